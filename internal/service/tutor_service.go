package service

import (
	"context"

	"github.com/Freeeeeet/tutorlink/internal/metrics"
	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TutorService struct {
	tutors   TutorProfileRepository
	accounts AccountRepository
	logger   *zap.Logger
}

func NewTutorService(tutors TutorProfileRepository, accounts AccountRepository, logger *zap.Logger) *TutorService {
	return &TutorService{
		tutors:   tutors,
		accounts: accounts,
		logger:   logger,
	}
}

// HasTutorProfile reports whether the account already applied.
// It is a plain read: two concurrent applications can both see false.
func (s *TutorService) HasTutorProfile(ctx context.Context, accountID uuid.UUID) (bool, error) {
	exists, err := s.tutors.ExistsForAccount(ctx, accountID)
	if err != nil {
		return false, storeError("check tutor profile", err)
	}
	return exists, nil
}

// ApplyAsTutor creates the caller's tutor profile in pending verification.
func (s *TutorService) ApplyAsTutor(ctx context.Context, actor Actor, details model.TutorDetails, institutionIDURL, nidURL string) (*model.TutorProfile, error) {
	if err := requireCaller(actor); err != nil {
		return nil, err
	}
	exists, err := s.HasTutorProfile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, newError(ErrAlreadyApplied, "You have already applied to become a tutor")
	}

	profile := &model.TutorProfile{
		UserID:             actor.ID,
		TutorDetails:       details,
		InstitutionIDURL:   institutionIDURL,
		NIDURL:             nidURL,
		VerificationStatus: model.VerificationPending,
	}
	if err := s.tutors.Create(ctx, profile); err != nil {
		return nil, storeError("create tutor profile", err)
	}

	metrics.RecordTransition("tutor", string(profile.VerificationStatus))
	s.logger.Info("Tutor application submitted",
		zap.String("tutor_profile_id", profile.ID.String()),
		zap.String("account_id", actor.ID.String()),
	)

	return profile, nil
}

// ListApprovedTutors is the public directory.
func (s *TutorService) ListApprovedTutors(ctx context.Context) ([]*model.TutorWithContact, error) {
	profiles, err := s.tutors.ListByStatus(ctx, model.VerificationApproved)
	if err != nil {
		return nil, storeError("list tutors", err)
	}
	return s.withContact(ctx, profiles), nil
}

// TutorDetails returns one tutor by account id with contact fields.
func (s *TutorService) TutorDetails(ctx context.Context, accountID uuid.UUID) (*model.TutorWithContact, error) {
	profile, err := s.tutors.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, storeError("get tutor profile", err)
	}
	if profile == nil {
		return nil, newError(ErrNotFound, "Tutor not found")
	}
	return s.withContact(ctx, []*model.TutorProfile{profile})[0], nil
}

func (s *TutorService) MyTutorProfile(ctx context.Context, actor Actor) (*model.TutorProfile, error) {
	if err := requireCaller(actor); err != nil {
		return nil, err
	}
	profile, err := s.tutors.GetByAccountID(ctx, actor.ID)
	if err != nil {
		return nil, storeError("get tutor profile", err)
	}
	if profile == nil {
		return nil, newError(ErrNotFound, "Tutor profile not found")
	}
	return profile, nil
}

// UpdateTutorProfile overwrites the caller's editable fields. Verification status is left as is,
// and an empty picture keeps the current one.
func (s *TutorService) UpdateTutorProfile(ctx context.Context, actor Actor, details model.TutorDetails) error {
	if err := requireCaller(actor); err != nil {
		return err
	}
	if err := s.tutors.UpdateDetails(ctx, actor.ID, &details); err != nil {
		return writeError("update tutor profile", err, "Tutor profile not found")
	}
	s.logger.Info("Tutor profile updated", zap.String("account_id", actor.ID.String()))
	return nil
}

// ListTutorsByStatus lists tutor profiles with contact fields. An empty status means all.
func (s *TutorService) ListTutorsByStatus(ctx context.Context, actor Actor, status model.VerificationStatus) ([]*model.TutorWithContact, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, newError(ErrInvalidStatus, "Invalid status")
	}
	profiles, err := s.tutors.ListByStatus(ctx, status)
	if err != nil {
		return nil, storeError("list tutors", err)
	}
	return s.withContact(ctx, profiles), nil
}

// GetTutorDocuments returns the verification view of one tutor profile.
func (s *TutorService) GetTutorDocuments(ctx context.Context, actor Actor, tutorProfileID uuid.UUID) (*model.TutorDocuments, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	profile, err := s.tutors.GetByID(ctx, tutorProfileID)
	if err != nil {
		return nil, storeError("get tutor profile", err)
	}
	if profile == nil {
		return nil, newError(ErrNotFound, "Tutor not found")
	}
	return s.documents(ctx, []*model.TutorProfile{profile})[0], nil
}

func (s *TutorService) ListAllTutorsWithDocuments(ctx context.Context, actor Actor) ([]*model.TutorDocuments, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	profiles, err := s.tutors.ListByStatus(ctx, "")
	if err != nil {
		return nil, storeError("list tutors", err)
	}
	return s.documents(ctx, profiles), nil
}

// SetVerification overwrites the verification status of a tutor profile.
func (s *TutorService) SetVerification(ctx context.Context, actor Actor, tutorProfileID uuid.UUID, status model.VerificationStatus) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if status != model.VerificationApproved && status != model.VerificationRejected {
		return newError(ErrInvalidStatus, "Status must be approved or rejected")
	}
	if err := s.tutors.SetVerificationStatus(ctx, tutorProfileID, status); err != nil {
		return writeError("set verification status", err, "Tutor not found")
	}

	metrics.RecordTransition("tutor", string(status))
	s.logger.Info("Tutor verification changed",
		zap.String("tutor_profile_id", tutorProfileID.String()),
		zap.String("status", string(status)),
		zap.String("admin_id", actor.ID.String()),
	)
	return nil
}

func (s *TutorService) joinAccounts(ctx context.Context, profiles []*model.TutorProfile) []Joined[*model.TutorProfile, *model.Account] {
	joined, err := JoinByID(ctx, profiles, func(t *model.TutorProfile) uuid.UUID { return t.UserID }, accountsByID(s.accounts), nil)
	if err != nil {
		s.logger.Warn("Tutor account lookup failed, using defaults", zap.Error(err))
	}
	return joined
}

func (s *TutorService) withContact(ctx context.Context, profiles []*model.TutorProfile) []*model.TutorWithContact {
	joined := s.joinAccounts(ctx, profiles)
	result := make([]*model.TutorWithContact, 0, len(joined))
	for _, j := range joined {
		view := &model.TutorWithContact{
			TutorProfile: j.Primary,
			FullName:     model.UnknownValue,
			Email:        model.UnknownValue,
			Phone:        model.UnknownValue,
		}
		if acc := j.Secondary; acc != nil {
			view.FullName = acc.FullName
			view.Email = acc.Email
			view.Phone = acc.Phone
			view.Address = acc.Address
		}
		result = append(result, view)
	}
	return result
}

func (s *TutorService) documents(ctx context.Context, profiles []*model.TutorProfile) []*model.TutorDocuments {
	joined := s.joinAccounts(ctx, profiles)
	result := make([]*model.TutorDocuments, 0, len(joined))
	for _, j := range joined {
		t := j.Primary
		doc := &model.TutorDocuments{
			ID:                 t.ID,
			UserID:             t.UserID,
			TutorName:          t.FirstName + " " + t.LastName,
			FullName:           model.UnknownValue,
			Email:              model.UnknownValue,
			Phone:              model.UnknownValue,
			InstitutionIDURL:   t.InstitutionIDURL,
			NIDURL:             t.NIDURL,
			VerificationStatus: t.VerificationStatus,
			CreatedAt:          t.CreatedAt,
		}
		if acc := j.Secondary; acc != nil {
			doc.FullName = acc.FullName
			doc.Email = acc.Email
			doc.Phone = acc.Phone
		}
		result = append(result, doc)
	}
	return result
}
