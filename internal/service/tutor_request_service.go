package service

import (
	"context"

	"github.com/Freeeeeet/tutorlink/internal/metrics"
	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TutorRequestService struct {
	requests TutorRequestRepository
	tutors   TutorProfileRepository
	accounts AccountRepository
	logger   *zap.Logger
}

func NewTutorRequestService(
	requests TutorRequestRepository,
	tutors TutorProfileRepository,
	accounts AccountRepository,
	logger *zap.Logger,
) *TutorRequestService {
	return &TutorRequestService{
		requests: requests,
		tutors:   tutors,
		accounts: accounts,
		logger:   logger,
	}
}

// HasPendingRequest reports whether the student has an unresolved request to the tutor.
// Two concurrent SendRequest calls can both pass this check.
func (s *TutorRequestService) HasPendingRequest(ctx context.Context, studentID, tutorID uuid.UUID) (bool, error) {
	pending, err := s.requests.HasPendingRequest(ctx, studentID, tutorID)
	if err != nil {
		return false, storeError("check pending request", err)
	}
	return pending, nil
}

// SendRequest creates a new pending request from the caller to a tutor.
// Resolved requests for the same pair do not block a new one.
func (s *TutorRequestService) SendRequest(ctx context.Context, actor Actor, tutorID uuid.UUID, message string) (*model.TutorRequest, error) {
	if err := requireCaller(actor); err != nil {
		return nil, err
	}
	if tutorID == uuid.Nil {
		return nil, newError(ErrValidation, "Missing required fields: tutor")
	}

	pending, err := s.HasPendingRequest(ctx, actor.ID, tutorID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, newError(ErrDuplicatePending, "You have already sent a pending request to this tutor")
	}

	req := &model.TutorRequest{
		StudentID: actor.ID,
		TutorID:   tutorID,
		Message:   message,
		Status:    model.RequestStatusPending,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, storeError("create tutor request", err)
	}

	metrics.RecordTransition("tutor_request", string(req.Status))
	s.logger.Info("Tutor request sent",
		zap.String("request_id", req.ID.String()),
		zap.String("student_id", actor.ID.String()),
		zap.String("tutor_id", tutorID.String()),
	)

	return req, nil
}

// ListRequestsForTutor returns requests addressed to the caller with the student's contact.
func (s *TutorRequestService) ListRequestsForTutor(ctx context.Context, actor Actor) ([]*model.RequestForTutor, error) {
	if err := requireCaller(actor); err != nil {
		return nil, err
	}
	reqs, err := s.requests.ListByTutor(ctx, actor.ID)
	if err != nil {
		return nil, storeError("list tutor requests", err)
	}

	joined, err := JoinByID(ctx, reqs, func(r *model.TutorRequest) uuid.UUID { return r.StudentID }, accountsByID(s.accounts), nil)
	if err != nil {
		s.logger.Warn("Student lookup failed for tutor requests", zap.Error(err))
	}

	result := make([]*model.RequestForTutor, 0, len(joined))
	for _, j := range joined {
		view := &model.RequestForTutor{TutorRequest: j.Primary}
		if acc := j.Secondary; acc != nil {
			contact := acc.Contact()
			view.Student = &contact
		}
		result = append(result, view)
	}
	return result, nil
}

// ListRequestsForStudent returns the caller's requests with a card for each tutor.
// Tutor profiles and accounts are fetched separately; either may be missing.
func (s *TutorRequestService) ListRequestsForStudent(ctx context.Context, actor Actor) ([]*model.RequestForStudent, error) {
	if err := requireCaller(actor); err != nil {
		return nil, err
	}
	reqs, err := s.requests.ListByStudent(ctx, actor.ID)
	if err != nil {
		return nil, storeError("list student requests", err)
	}

	tutorOf := func(r *model.TutorRequest) uuid.UUID { return r.TutorID }
	withProfiles, err := JoinByID(ctx, reqs, tutorOf, tutorProfilesByAccountID(s.tutors), nil)
	if err != nil {
		s.logger.Warn("Tutor profile lookup failed for student requests", zap.Error(err))
	}
	withAccounts, err := JoinByID(ctx, reqs, tutorOf, accountsByID(s.accounts), nil)
	if err != nil {
		s.logger.Warn("Tutor account lookup failed for student requests", zap.Error(err))
	}

	result := make([]*model.RequestForStudent, 0, len(reqs))
	for i, req := range reqs {
		card := model.TutorCard{
			UserID:    req.TutorID,
			FirstName: model.UnknownValue,
			SSCResult: model.NotAvailable,
			HSCResult: model.NotAvailable,
			Email:     model.NotAvailable,
			Phone:     model.NotAvailable,
			Address:   model.NotAvailable,
		}
		if t := withProfiles[i].Secondary; t != nil {
			card.FirstName = orDefault(t.FirstName, model.UnknownValue)
			card.LastName = t.LastName
			card.SSCResult = orDefault(t.SSCResult, model.NotAvailable)
			card.HSCResult = orDefault(t.HSCResult, model.NotAvailable)
		}
		if acc := withAccounts[i].Secondary; acc != nil {
			card.Email = orDefault(acc.Email, model.NotAvailable)
			card.Phone = orDefault(acc.Phone, model.NotAvailable)
			card.Address = orDefault(acc.Address, model.NotAvailable)
		}
		result = append(result, &model.RequestForStudent{TutorRequest: req, Tutor: card})
	}
	return result, nil
}

// CheckRequestStatus reports the status of the caller's most recent request to the tutor.
func (s *TutorRequestService) CheckRequestStatus(ctx context.Context, actor Actor, tutorID uuid.UUID) (*model.RequestCheck, error) {
	if err := requireCaller(actor); err != nil {
		return nil, err
	}
	latest, err := s.requests.Latest(ctx, actor.ID, tutorID)
	if err != nil {
		return nil, storeError("get latest request", err)
	}
	check := &model.RequestCheck{}
	if latest != nil {
		status := latest.Status
		check.HasRequested = true
		check.Status = &status
	}
	return check, nil
}

// SetRequestStatus resolves a request addressed to the caller. Admins may resolve any request.
func (s *TutorRequestService) SetRequestStatus(ctx context.Context, actor Actor, requestID uuid.UUID, status model.RequestStatus) (*model.TutorRequest, error) {
	if err := requireCaller(actor); err != nil {
		return nil, err
	}
	if status != model.RequestStatusAccepted && status != model.RequestStatusRejected {
		return nil, newError(ErrInvalidStatus, "Status must be accepted or rejected")
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, storeError("get tutor request", err)
	}
	if req == nil {
		return nil, newError(ErrNotFound, "Request not found")
	}
	if !actor.Is(req.TutorID) && !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "You can only respond to requests sent to you")
	}

	updated, err := s.requests.UpdateStatus(ctx, requestID, status)
	if err != nil {
		return nil, writeError("update tutor request status", err, "Request not found")
	}

	metrics.RecordTransition("tutor_request", string(status))
	s.logger.Info("Tutor request status changed",
		zap.String("request_id", updated.ID.String()),
		zap.String("status", string(status)),
	)

	return updated, nil
}
