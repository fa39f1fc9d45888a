package memstore

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/Freeeeeet/tutorlink/internal/repository/base"
	"github.com/google/uuid"
)

type PostRepository struct {
	store *Store
}

func (r *PostRepository) Create(_ context.Context, p *model.TuitionPost) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = newID(p.ID)
	if p.ApprovalStatus == "" {
		p.ApprovalStatus = model.ApprovalPending
	}
	p.CreatedAt = s.now()
	s.state.posts[p.ID] = *p
	return nil
}

func (r *PostRepository) GetByID(_ context.Context, id uuid.UUID) (*model.TuitionPost, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.state.posts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PostRepository) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*model.TuitionPost, error) {
	return r.filter(func(p *model.TuitionPost) bool { return containsID(ids, p.ID) }), nil
}

func (r *PostRepository) ListApproved(_ context.Context) ([]*model.TuitionPost, error) {
	return r.filter(func(p *model.TuitionPost) bool { return p.IsApproved }), nil
}

func (r *PostRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*model.TuitionPost, error) {
	return r.filter(func(p *model.TuitionPost) bool { return p.OwnerID == ownerID }), nil
}

func (r *PostRepository) ListByApprovalStatus(_ context.Context, status model.ApprovalStatus) ([]*model.TuitionPost, error) {
	return r.filter(func(p *model.TuitionPost) bool {
		return status == "" || p.ApprovalStatus == status
	}), nil
}

// Update overwrites the editable and approval fields of a post owned by p.OwnerID.
func (r *PostRepository) Update(_ context.Context, p *model.TuitionPost) error {
	return r.update(p.ID, func(stored *model.TuitionPost) bool {
		if stored.OwnerID != p.OwnerID {
			return false
		}
		stored.PostFields = p.PostFields
		stored.IsApproved = p.IsApproved
		stored.ApprovalStatus = p.ApprovalStatus
		return true
	})
}

func (r *PostRepository) SetApproval(_ context.Context, id uuid.UUID, status model.ApprovalStatus) error {
	return r.update(id, func(stored *model.TuitionPost) bool {
		stored.SetApproval(status)
		return true
	})
}

func (r *PostRepository) MarkBooked(_ context.Context, id, bookedBy uuid.UUID) error {
	return r.update(id, func(stored *model.TuitionPost) bool {
		stored.IsBooked = true
		stored.BookedBy = &bookedBy
		return true
	})
}

func (r *PostRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.posts[id]; !ok {
		return base.ErrNotFound
	}
	s.deletePostLocked(id)
	return nil
}

func (r *PostRepository) Count(ctx context.Context, status model.ApprovalStatus) (int, error) {
	posts, err := r.ListByApprovalStatus(ctx, status)
	return len(posts), err
}

func (r *PostRepository) update(id uuid.UUID, apply func(*model.TuitionPost) bool) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.state.posts[id]
	if !ok || !apply(&p) {
		return base.ErrNotFound
	}
	s.state.posts[id] = p
	return nil
}

func (r *PostRepository) filter(keep func(*model.TuitionPost) bool) []*model.TuitionPost {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.TuitionPost, 0)
	for _, p := range s.state.posts {
		if keep(&p) {
			result = append(result, &p)
		}
	}
	return newestFirst(result, func(p *model.TuitionPost) time.Time { return p.CreatedAt })
}

// deletePostLocked removes a post and its applications. Callers hold the write lock.
func (s *Store) deletePostLocked(id uuid.UUID) {
	delete(s.state.posts, id)
	for aid, a := range s.state.applications {
		if a.PostID == id {
			delete(s.state.applications, aid)
		}
	}
}
