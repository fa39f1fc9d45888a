package memstore

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/Freeeeeet/tutorlink/internal/repository/base"
	"github.com/google/uuid"
)

type AccountRepository struct {
	store *Store
}

func (r *AccountRepository) Create(_ context.Context, acc *model.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	acc.ID = newID(acc.ID)
	if _, exists := s.state.accounts[acc.ID]; exists {
		return fmt.Errorf("duplicate key value violates unique constraint \"profiles_pkey\"")
	}
	if acc.Role == "" {
		acc.Role = model.RoleStudent
	}
	acc.CreatedAt = s.now()
	s.state.accounts[acc.ID] = *acc
	return nil
}

func (r *AccountRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.state.accounts[id]
	if !ok {
		return nil, nil
	}
	return &acc, nil
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, acc := range s.state.accounts {
		if acc.Email == email {
			found := acc
			return &found, nil
		}
	}
	return nil, nil
}

func (r *AccountRepository) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*model.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.Account, 0, len(ids))
	for _, id := range ids {
		if acc, ok := s.state.accounts[id]; ok {
			result = append(result, &acc)
		}
	}
	return result, nil
}

func (r *AccountRepository) List(_ context.Context) ([]*model.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.Account, 0, len(s.state.accounts))
	for _, acc := range s.state.accounts {
		result = append(result, &acc)
	}
	return newestFirst(result, func(a *model.Account) time.Time { return a.CreatedAt }), nil
}

func (r *AccountRepository) UpdateDetails(_ context.Context, acc *model.Account) error {
	return r.update(acc.ID, func(stored *model.Account) {
		stored.FullName = acc.FullName
		stored.Phone = acc.Phone
		stored.Address = acc.Address
		stored.Gender = acc.Gender
	})
}

func (r *AccountRepository) UpdateRole(_ context.Context, id uuid.UUID, role model.Role) error {
	if !role.Valid() {
		return fmt.Errorf("new row for relation \"profiles\" violates check constraint \"profiles_role_check\"")
	}
	return r.update(id, func(stored *model.Account) {
		stored.Role = role
	})
}

func (r *AccountRepository) UpdatePicture(_ context.Context, id uuid.UUID, url string) error {
	return r.update(id, func(stored *model.Account) {
		stored.ProfilePictureURL = &url
	})
}

func (r *AccountRepository) update(id uuid.UUID, apply func(*model.Account)) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.state.accounts[id]
	if !ok {
		return base.ErrNotFound
	}
	apply(&acc)
	s.state.accounts[id] = acc
	return nil
}

// Delete removes the account and everything that references it, as the schema's cascades do.
func (r *AccountRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.accounts[id]; !ok {
		return base.ErrNotFound
	}
	delete(s.state.accounts, id)

	for tid, t := range s.state.tutors {
		if t.UserID == id {
			delete(s.state.tutors, tid)
		}
	}
	for pid, p := range s.state.posts {
		switch {
		case p.OwnerID == id:
			s.deletePostLocked(pid)
		case p.BookedBy != nil && *p.BookedBy == id:
			p.BookedBy = nil
			s.state.posts[pid] = p
		}
	}
	for aid, a := range s.state.applications {
		if a.ApplicantID == id || a.PostOwnerID == id {
			delete(s.state.applications, aid)
		}
	}
	for rid, req := range s.state.requests {
		if req.StudentID == id || req.TutorID == id {
			delete(s.state.requests, rid)
		}
	}
	return nil
}

func (r *AccountRepository) Count(_ context.Context) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.accounts), nil
}
