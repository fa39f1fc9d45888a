package service

import (
	"context"

	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminService struct {
	accounts     AccountRepository
	tutors       TutorProfileRepository
	posts        PostRepository
	applications ApplicationRepository
	logger       *zap.Logger
}

func NewAdminService(
	accounts AccountRepository,
	tutors TutorProfileRepository,
	posts PostRepository,
	applications ApplicationRepository,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		accounts:     accounts,
		tutors:       tutors,
		posts:        posts,
		applications: applications,
		logger:       logger,
	}
}

// Stats returns the dashboard counters.
func (s *AdminService) Stats(ctx context.Context, actor Actor) (*model.Stats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var (
		stats model.Stats
		err   error
	)
	if stats.TotalUsers, err = s.accounts.Count(ctx); err != nil {
		return nil, storeError("count accounts", err)
	}
	if stats.TotalTutors, err = s.tutors.Count(ctx, ""); err != nil {
		return nil, storeError("count tutors", err)
	}
	if stats.PendingTutors, err = s.tutors.Count(ctx, model.VerificationPending); err != nil {
		return nil, storeError("count pending tutors", err)
	}
	if stats.TotalPosts, err = s.posts.Count(ctx, ""); err != nil {
		return nil, storeError("count posts", err)
	}
	if stats.TotalApplications, err = s.applications.Count(ctx); err != nil {
		return nil, storeError("count applications", err)
	}
	if stats.PendingPosts, err = s.posts.Count(ctx, model.ApprovalPending); err != nil {
		return nil, storeError("count pending posts", err)
	}

	return &stats, nil
}

func (s *AdminService) ListUsers(ctx context.Context, actor Actor) ([]*model.Account, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, storeError("list accounts", err)
	}
	return accounts, nil
}

// DeleteUser removes an account; owned records go with it.
func (s *AdminService) DeleteUser(ctx context.Context, actor Actor, accountID uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, accountID); err != nil {
		return writeError("delete account", err, "User not found")
	}
	s.logger.Info("User deleted",
		zap.String("account_id", accountID.String()),
		zap.String("admin_id", actor.ID.String()),
	)
	return nil
}

func (s *AdminService) SetUserRole(ctx context.Context, actor Actor, accountID uuid.UUID, role model.Role) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if !role.Valid() {
		return newError(ErrValidation, "Invalid role")
	}
	if err := s.accounts.UpdateRole(ctx, accountID, role); err != nil {
		return writeError("update role", err, "User not found")
	}
	s.logger.Info("User role changed",
		zap.String("account_id", accountID.String()),
		zap.String("role", string(role)),
		zap.String("admin_id", actor.ID.String()),
	)
	return nil
}
