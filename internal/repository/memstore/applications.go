package memstore

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/Freeeeeet/tutorlink/internal/repository/base"
	"github.com/google/uuid"
)

type ApplicationRepository struct {
	store *Store
}

func (r *ApplicationRepository) Create(_ context.Context, a *model.Application) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = newID(a.ID)
	if a.Status == "" {
		a.Status = model.ApplicationPending
	}
	a.CreatedAt = s.now()
	s.state.applications[a.ID] = *a
	return nil
}

func (r *ApplicationRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Application, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.state.applications[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *ApplicationRepository) FindByPostAndApplicant(_ context.Context, postID, applicantID uuid.UUID) (*model.Application, error) {
	apps := r.filter(func(a *model.Application) bool {
		return a.PostID == postID && a.ApplicantID == applicantID
	})
	if len(apps) == 0 {
		return nil, nil
	}
	return apps[0], nil
}

func (r *ApplicationRepository) ListByPostOwner(_ context.Context, ownerID uuid.UUID) ([]*model.Application, error) {
	return r.filter(func(a *model.Application) bool { return a.PostOwnerID == ownerID }), nil
}

func (r *ApplicationRepository) ListByApplicant(_ context.Context, applicantID uuid.UUID) ([]*model.Application, error) {
	return r.filter(func(a *model.Application) bool { return a.ApplicantID == applicantID }), nil
}

func (r *ApplicationRepository) UpdateStatus(_ context.Context, id uuid.UUID, status model.ApplicationStatus) (*model.Application, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.state.applications[id]
	if !ok {
		return nil, base.ErrNotFound
	}
	a.Status = status
	s.state.applications[id] = a
	return &a, nil
}

func (r *ApplicationRepository) Count(_ context.Context) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.applications), nil
}

func (r *ApplicationRepository) filter(keep func(*model.Application) bool) []*model.Application {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.Application, 0)
	for _, a := range s.state.applications {
		if keep(&a) {
			result = append(result, &a)
		}
	}
	return newestFirst(result, func(a *model.Application) time.Time { return a.CreatedAt })
}
