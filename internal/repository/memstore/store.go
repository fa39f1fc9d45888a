// Package memstore keeps every table in process memory behind one mutex.
// It satisfies the same repository contracts as the pgx repositories and is
// used where a database is not available.
package memstore

import (
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/google/uuid"
)

type state struct {
	accounts     map[uuid.UUID]model.Account
	tutors       map[uuid.UUID]model.TutorProfile
	posts        map[uuid.UUID]model.TuitionPost
	applications map[uuid.UUID]model.Application
	requests     map[uuid.UUID]model.TutorRequest
}

// Store is the shared in-memory state. Repositories obtained from it see each other's writes.
type Store struct {
	mu    sync.RWMutex
	state state
	clock time.Time
}

func New() *Store {
	return &Store{
		state: state{
			accounts:     map[uuid.UUID]model.Account{},
			tutors:       map[uuid.UUID]model.TutorProfile{},
			posts:        map[uuid.UUID]model.TuitionPost{},
			applications: map[uuid.UUID]model.Application{},
			requests:     map[uuid.UUID]model.TutorRequest{},
		},
		clock: time.Now().UTC(),
	}
}

func (s *Store) Accounts() *AccountRepository {
	return &AccountRepository{store: s}
}

func (s *Store) TutorProfiles() *TutorProfileRepository {
	return &TutorProfileRepository{store: s}
}

func (s *Store) Posts() *PostRepository {
	return &PostRepository{store: s}
}

func (s *Store) Applications() *ApplicationRepository {
	return &ApplicationRepository{store: s}
}

func (s *Store) TutorRequests() *TutorRequestRepository {
	return &TutorRequestRepository{store: s}
}

// now returns a strictly increasing timestamp so newest-first ordering is stable.
// Callers hold the write lock.
func (s *Store) now() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func newID(id uuid.UUID) uuid.UUID {
	if id != uuid.Nil {
		return id
	}
	return uuid.New()
}

// newestFirst sorts by creation time, latest first.
func newestFirst[T any](items []*T, createdAt func(*T) time.Time) []*T {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
	return items
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
