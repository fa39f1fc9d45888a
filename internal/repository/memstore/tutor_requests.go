package memstore

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/Freeeeeet/tutorlink/internal/repository/base"
	"github.com/google/uuid"
)

type TutorRequestRepository struct {
	store *Store
}

func (r *TutorRequestRepository) Create(_ context.Context, req *model.TutorRequest) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	req.ID = newID(req.ID)
	if req.Status == "" {
		req.Status = model.RequestStatusPending
	}
	req.CreatedAt = s.now()
	s.state.requests[req.ID] = *req
	return nil
}

func (r *TutorRequestRepository) GetByID(_ context.Context, id uuid.UUID) (*model.TutorRequest, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.state.requests[id]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

func (r *TutorRequestRepository) HasPendingRequest(_ context.Context, studentID, tutorID uuid.UUID) (bool, error) {
	pending := r.filter(func(req *model.TutorRequest) bool {
		return req.StudentID == studentID && req.TutorID == tutorID && req.IsPending()
	})
	return len(pending) > 0, nil
}

func (r *TutorRequestRepository) Latest(_ context.Context, studentID, tutorID uuid.UUID) (*model.TutorRequest, error) {
	reqs := r.filter(func(req *model.TutorRequest) bool {
		return req.StudentID == studentID && req.TutorID == tutorID
	})
	if len(reqs) == 0 {
		return nil, nil
	}
	return reqs[0], nil
}

func (r *TutorRequestRepository) ListByTutor(_ context.Context, tutorID uuid.UUID) ([]*model.TutorRequest, error) {
	return r.filter(func(req *model.TutorRequest) bool { return req.TutorID == tutorID }), nil
}

func (r *TutorRequestRepository) ListByStudent(_ context.Context, studentID uuid.UUID) ([]*model.TutorRequest, error) {
	return r.filter(func(req *model.TutorRequest) bool { return req.StudentID == studentID }), nil
}

func (r *TutorRequestRepository) UpdateStatus(_ context.Context, id uuid.UUID, status model.RequestStatus) (*model.TutorRequest, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.state.requests[id]
	if !ok {
		return nil, base.ErrNotFound
	}
	req.Status = status
	s.state.requests[id] = req
	return &req, nil
}

func (r *TutorRequestRepository) filter(keep func(*model.TutorRequest) bool) []*model.TutorRequest {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.TutorRequest, 0)
	for _, req := range s.state.requests {
		if keep(&req) {
			result = append(result, &req)
		}
	}
	return newestFirst(result, func(req *model.TutorRequest) time.Time { return req.CreatedAt })
}
