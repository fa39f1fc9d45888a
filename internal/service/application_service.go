package service

import (
	"context"

	"github.com/Freeeeeet/tutorlink/internal/metrics"
	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApplicationService struct {
	applications ApplicationRepository
	posts        PostRepository
	accounts     AccountRepository
	logger       *zap.Logger
}

func NewApplicationService(
	applications ApplicationRepository,
	posts PostRepository,
	accounts AccountRepository,
	logger *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		posts:        posts,
		accounts:     accounts,
		logger:       logger,
	}
}

// HasApplication returns the existing application of the applicant on the post, or nil.
// Nothing stops a concurrent Apply from inserting between this check and the insert.
func (s *ApplicationService) HasApplication(ctx context.Context, postID, applicantID uuid.UUID) (*model.Application, error) {
	app, err := s.applications.FindByPostAndApplicant(ctx, postID, applicantID)
	if err != nil {
		return nil, storeError("find application", err)
	}
	return app, nil
}

// Apply records the caller's interest in a post. The post owner is copied onto the application.
func (s *ApplicationService) Apply(ctx context.Context, actor Actor, postID uuid.UUID, message string) (*model.Application, error) {
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

	existing, err := s.HasApplication(ctx, postID, actor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, newError(ErrAlreadyApplied, "You have already applied to this post")
	}

	app := &model.Application{
		PostID:      post.ID,
		ApplicantID: actor.ID,
		PostOwnerID: post.OwnerID,
		Message:     message,
		Status:      model.ApplicationPending,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, storeError("create application", err)
	}

	metrics.RecordTransition("application", string(app.Status))
	s.logger.Info("Application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("post_id", post.ID.String()),
		zap.String("applicant_id", actor.ID.String()),
	)

	return app, nil
}

// ListApplicationsForOwner returns applications on the caller's posts with applicant contacts.
func (s *ApplicationService) ListApplicationsForOwner(ctx context.Context, actor Actor) ([]*model.ApplicationView, error) {
	if err := requireCaller(actor); err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByPostOwner(ctx, actor.ID)
	if err != nil {
		return nil, storeError("list applications", err)
	}
	return s.views(ctx, apps, func(a *model.Application) uuid.UUID { return a.ApplicantID }, func(v *model.ApplicationView, c *model.Contact) {
		v.Applicant = c
	}), nil
}

// ListApplicationsByApplicant returns the caller's own applications with post owner contacts.
func (s *ApplicationService) ListApplicationsByApplicant(ctx context.Context, actor Actor) ([]*model.ApplicationView, error) {
	if err := requireCaller(actor); err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByApplicant(ctx, actor.ID)
	if err != nil {
		return nil, storeError("list applications", err)
	}
	return s.views(ctx, apps, func(a *model.Application) uuid.UUID { return a.PostOwnerID }, func(v *model.ApplicationView, c *model.Contact) {
		v.Owner = c
	}), nil
}

// CheckApplied tells the caller whether they applied to the post. Absence is not an error.
func (s *ApplicationService) CheckApplied(ctx context.Context, actor Actor, postID uuid.UUID) (*model.ApplicationCheck, error) {
	if err := requireCaller(actor); err != nil {
		return nil, err
	}
	app, err := s.HasApplication(ctx, postID, actor.ID)
	if err != nil {
		return nil, err
	}
	check := &model.ApplicationCheck{}
	if app != nil {
		status := app.Status
		check.HasApplied = true
		check.Status = &status
	}
	return check, nil
}

// SetApplicationStatus resolves an application. Only the post owner or an admin may do it.
// Accepting also books the post for the applicant as a second write; a failed booking
// is reported but the status change stays.
func (s *ApplicationService) SetApplicationStatus(ctx context.Context, actor Actor, applicationID uuid.UUID, status model.ApplicationStatus) (*model.Application, error) {
	if err := requireCaller(actor); err != nil {
		return nil, err
	}
	if status != model.ApplicationAccepted && status != model.ApplicationRejected {
		return nil, newError(ErrInvalidStatus, "Status must be accepted or rejected")
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, storeError("get application", err)
	}
	if app == nil {
		return nil, newError(ErrNotFound, "Application not found")
	}
	if !actor.Is(app.PostOwnerID) && !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "You can only respond to applications on your own posts")
	}

	updated, err := s.applications.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		return nil, writeError("update application status", err, "Application not found")
	}
	metrics.RecordTransition("application", string(status))

	if updated.IsAccepted() {
		if err := s.posts.MarkBooked(ctx, updated.PostID, updated.ApplicantID); err != nil {
			s.logger.Error("Application accepted but post booking failed",
				zap.String("application_id", updated.ID.String()),
				zap.String("post_id", updated.PostID.String()),
				zap.Error(err),
			)
			return updated, writeError("book post", err, "Post not found")
		}
		metrics.RecordTransition("post", "booked")
		s.logger.Info("Post booked",
			zap.String("post_id", updated.PostID.String()),
			zap.String("booked_by", updated.ApplicantID.String()),
		)
	}

	s.logger.Info("Application status changed",
		zap.String("application_id", updated.ID.String()),
		zap.String("status", string(status)),
	)

	return updated, nil
}

func (s *ApplicationService) views(
	ctx context.Context,
	apps []*model.Application,
	counterpartOf func(*model.Application) uuid.UUID,
	attach func(*model.ApplicationView, *model.Contact),
) []*model.ApplicationView {
	withPosts, err := JoinByID(ctx, apps, func(a *model.Application) uuid.UUID { return a.PostID }, postsByID(s.posts), nil)
	if err != nil {
		s.logger.Warn("Post lookup failed for applications", zap.Error(err))
	}
	withAccounts, err := JoinByID(ctx, apps, counterpartOf, accountsByID(s.accounts), nil)
	if err != nil {
		s.logger.Warn("Account lookup failed for applications", zap.Error(err))
	}

	result := make([]*model.ApplicationView, 0, len(apps))
	for i, app := range apps {
		view := &model.ApplicationView{
			ID:        app.ID,
			Message:   app.Message,
			Status:    app.Status,
			CreatedAt: app.CreatedAt,
		}
		if post := withPosts[i].Secondary; post != nil {
			view.Post = post.Summary()
		}
		if acc := withAccounts[i].Secondary; acc != nil {
			attach(view, &model.Contact{FullName: acc.FullName, Email: acc.Email, Phone: acc.Phone})
		}
		result = append(result, view)
	}
	return result
}
