package memstore

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/Freeeeeet/tutorlink/internal/repository/base"
	"github.com/google/uuid"
)

type TutorProfileRepository struct {
	store *Store
}

func (r *TutorProfileRepository) Create(_ context.Context, t *model.TutorProfile) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = newID(t.ID)
	if t.VerificationStatus == "" {
		t.VerificationStatus = model.VerificationPending
	}
	t.CreatedAt = s.now()
	s.state.tutors[t.ID] = *t
	return nil
}

func (r *TutorProfileRepository) GetByID(_ context.Context, id uuid.UUID) (*model.TutorProfile, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.state.tutors[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *TutorProfileRepository) GetByAccountID(_ context.Context, accountID uuid.UUID) (*model.TutorProfile, error) {
	profiles := r.filter(func(t *model.TutorProfile) bool { return t.UserID == accountID })
	if len(profiles) == 0 {
		return nil, nil
	}
	return profiles[0], nil
}

func (r *TutorProfileRepository) GetByAccountIDs(_ context.Context, accountIDs []uuid.UUID) ([]*model.TutorProfile, error) {
	return r.filter(func(t *model.TutorProfile) bool { return containsID(accountIDs, t.UserID) }), nil
}

func (r *TutorProfileRepository) ExistsForAccount(ctx context.Context, accountID uuid.UUID) (bool, error) {
	t, err := r.GetByAccountID(ctx, accountID)
	return t != nil, err
}

func (r *TutorProfileRepository) ListByStatus(_ context.Context, status model.VerificationStatus) ([]*model.TutorProfile, error) {
	return r.filter(func(t *model.TutorProfile) bool {
		return status == "" || t.VerificationStatus == status
	}), nil
}

func (r *TutorProfileRepository) UpdateDetails(_ context.Context, accountID uuid.UUID, d *model.TutorDetails) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.state.tutors {
		if t.UserID != accountID {
			continue
		}
		picture := t.ProfilePictureURL
		t.TutorDetails = *d
		if t.ProfilePictureURL == "" {
			t.ProfilePictureURL = picture
		}
		s.state.tutors[id] = t
		return nil
	}
	return base.ErrNotFound
}

func (r *TutorProfileRepository) SetVerificationStatus(_ context.Context, id uuid.UUID, status model.VerificationStatus) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.state.tutors[id]
	if !ok {
		return base.ErrNotFound
	}
	t.VerificationStatus = status
	s.state.tutors[id] = t
	return nil
}

func (r *TutorProfileRepository) Count(ctx context.Context, status model.VerificationStatus) (int, error) {
	profiles, err := r.ListByStatus(ctx, status)
	return len(profiles), err
}

func (r *TutorProfileRepository) filter(keep func(*model.TutorProfile) bool) []*model.TutorProfile {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.TutorProfile, 0)
	for _, t := range s.state.tutors {
		if keep(&t) {
			result = append(result, &t)
		}
	}
	return newestFirst(result, func(t *model.TutorProfile) time.Time { return t.CreatedAt })
}
