package service

import (
	"context"

	"github.com/Freeeeeet/tutorlink/internal/metrics"
	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PostService struct {
	posts    PostRepository
	accounts AccountRepository
	logger   *zap.Logger
}

func NewPostService(posts PostRepository, accounts AccountRepository, logger *zap.Logger) *PostService {
	return &PostService{
		posts:    posts,
		accounts: accounts,
		logger:   logger,
	}
}

// CreatePost stores a new post awaiting admin review.
// Only presence is checked; values are taken as given.
func (s *PostService) CreatePost(ctx context.Context, actor Actor, fields model.PostFields) (*model.TuitionPost, error) {
	if err := requireCaller(actor); err != nil {
		return nil, err
	}
	err := requirePresent(
		field{"class level", fields.ClassLevel},
		field{"subject", fields.Subject},
		field{"salary", fields.Salary},
		field{"location", fields.Location},
		field{"gender", fields.Gender},
		field{"requirement", fields.Requirement},
		field{"student ID card", fields.StudentIDCardURL},
	)
	if err != nil {
		return nil, err
	}

	post := &model.TuitionPost{
		OwnerID:    actor.ID,
		PostFields: fields,
	}
	post.ResetApproval()

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, storeError("create post", err)
	}

	metrics.RecordTransition("post", string(post.ApprovalStatus))
	s.logger.Info("Post created",
		zap.String("post_id", post.ID.String()),
		zap.String("owner_id", actor.ID.String()),
		zap.String("subject", post.Subject),
	)

	return post, nil
}

// ListApprovedPosts returns the public board, newest first.
func (s *PostService) ListApprovedPosts(ctx context.Context) ([]*model.TuitionPost, error) {
	posts, err := s.posts.ListApproved(ctx)
	if err != nil {
		return nil, storeError("list approved posts", err)
	}
	return posts, nil
}

// ListOwnerPosts returns every post of the caller regardless of status.
func (s *PostService) ListOwnerPosts(ctx context.Context, actor Actor) ([]*model.TuitionPost, error) {
	if err := requireCaller(actor); err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, storeError("list owner posts", err)
	}
	return posts, nil
}

// GetOwnPost loads a post for its owner's edit form. Posts of other owners are reported as missing.
func (s *PostService) GetOwnPost(ctx context.Context, actor Actor, postID uuid.UUID) (*model.TuitionPost, error) {
	if err := requireCaller(actor); err != nil {
		return nil, err
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, storeError("get post", err)
	}
	if post == nil || !post.IsOwnedBy(actor.ID) {
		return nil, newError(ErrNotFound, "Post not found")
	}
	return post, nil
}

// UpdatePost overwrites the editable fields and sends the post back to review,
// whatever its previous approval status was.
func (s *PostService) UpdatePost(ctx context.Context, actor Actor, postID uuid.UUID, fields model.PostFields) (*model.TuitionPost, error) {
	if err := requireCaller(actor); err != nil {
		return nil, err
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, storeError("get post", err)
	}
	if post == nil {
		return nil, newError(ErrNotFound, "Post not found")
	}
	if !post.IsOwnedBy(actor.ID) {
		return nil, newError(ErrForbidden, "Unauthorized to edit this post")
	}

	previous := post.ApprovalStatus
	post.PostFields = fields
	post.ResetApproval()

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, writeError("update post", err, "Post not found")
	}

	metrics.RecordTransition("post", string(post.ApprovalStatus))
	s.logger.Info("Post updated and sent for review",
		zap.String("post_id", post.ID.String()),
		zap.String("previous_status", string(previous)),
	)

	return post, nil
}

// DeletePost removes a post owned by the caller.
func (s *PostService) DeletePost(ctx context.Context, actor Actor, postID uuid.UUID) error {
	if err := requireCaller(actor); err != nil {
		return err
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return storeError("get post", err)
	}
	if post == nil {
		return newError(ErrNotFound, "Post not found")
	}
	if !post.IsOwnedBy(actor.ID) {
		return newError(ErrForbidden, "You can only delete your own posts")
	}
	return s.delete(ctx, actor, postID)
}

// AdminDeletePost removes any post.
func (s *PostService) AdminDeletePost(ctx context.Context, actor Actor, postID uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.delete(ctx, actor, postID)
}

func (s *PostService) delete(ctx context.Context, actor Actor, postID uuid.UUID) error {
	if err := s.posts.Delete(ctx, postID); err != nil {
		return writeError("delete post", err, "Post not found")
	}
	s.logger.Info("Post deleted",
		zap.String("post_id", postID.String()),
		zap.String("by", actor.ID.String()),
	)
	return nil
}

// ListPostsWithOwnerInfo returns every post decorated with its owner's contact fields.
func (s *PostService) ListPostsWithOwnerInfo(ctx context.Context, actor Actor) ([]*model.PostWithOwner, error) {
	return s.ListPostsByStatus(ctx, actor, "")
}

// ListPostsByStatus is ListPostsWithOwnerInfo narrowed to one approval status.
// An empty status means every post.
func (s *PostService) ListPostsByStatus(ctx context.Context, actor Actor, status model.ApprovalStatus) ([]*model.PostWithOwner, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, newError(ErrInvalidStatus, "Invalid status")
	}

	posts, err := s.posts.ListByApprovalStatus(ctx, status)
	if err != nil {
		return nil, storeError("list posts", err)
	}

	joined, err := JoinByID(ctx, posts, func(p *model.TuitionPost) uuid.UUID { return p.OwnerID }, accountsByID(s.accounts), nil)
	if err != nil {
		s.logger.Warn("Owner lookup failed, using defaults", zap.Error(err))
	}

	result := make([]*model.PostWithOwner, 0, len(joined))
	for _, j := range joined {
		view := &model.PostWithOwner{
			TuitionPost: j.Primary,
			OwnerName:   model.UnknownValue,
			OwnerEmail:  model.UnknownValue,
			OwnerPhone:  model.UnknownValue,
		}
		if owner := j.Secondary; owner != nil {
			view.OwnerName = orDefault(owner.FullName, model.UnknownValue)
			view.OwnerEmail = orDefault(owner.Email, model.UnknownValue)
			view.OwnerPhone = orDefault(owner.Phone, model.UnknownValue)
		}
		result = append(result, view)
	}

	return result, nil
}

// SetApprovalStatus records an admin decision. Both approval fields change in one write.
func (s *PostService) SetApprovalStatus(ctx context.Context, actor Actor, postID uuid.UUID, status model.ApprovalStatus) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if status != model.ApprovalApproved && status != model.ApprovalRejected {
		return newError(ErrInvalidStatus, "Status must be approved or rejected")
	}

	if err := s.posts.SetApproval(ctx, postID, status); err != nil {
		return writeError("set post approval", err, "Post not found")
	}

	metrics.RecordTransition("post", string(status))
	s.logger.Info("Post approval changed",
		zap.String("post_id", postID.String()),
		zap.String("status", string(status)),
		zap.String("admin_id", actor.ID.String()),
	)

	return nil
}
