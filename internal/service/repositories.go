package service

import (
	"context"

	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/google/uuid"
)

// Single-row getters return (nil, nil) when the row does not exist.
// Writes that match no row return an error satisfying base.IsNotFound.

type AccountRepository interface {
	Create(ctx context.Context, acc *model.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Account, error)
	List(ctx context.Context) ([]*model.Account, error)
	UpdateDetails(ctx context.Context, acc *model.Account) error
	UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error
	UpdatePicture(ctx context.Context, id uuid.UUID, url string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type TutorProfileRepository interface {
	Create(ctx context.Context, t *model.TutorProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.TutorProfile, error)
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*model.TutorProfile, error)
	GetByAccountIDs(ctx context.Context, accountIDs []uuid.UUID) ([]*model.TutorProfile, error)
	ExistsForAccount(ctx context.Context, accountID uuid.UUID) (bool, error)
	ListByStatus(ctx context.Context, status model.VerificationStatus) ([]*model.TutorProfile, error)
	UpdateDetails(ctx context.Context, accountID uuid.UUID, d *model.TutorDetails) error
	SetVerificationStatus(ctx context.Context, id uuid.UUID, status model.VerificationStatus) error
	Count(ctx context.Context, status model.VerificationStatus) (int, error)
}

type PostRepository interface {
	Create(ctx context.Context, p *model.TuitionPost) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.TuitionPost, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.TuitionPost, error)
	ListApproved(ctx context.Context) ([]*model.TuitionPost, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.TuitionPost, error)
	ListByApprovalStatus(ctx context.Context, status model.ApprovalStatus) ([]*model.TuitionPost, error)
	Update(ctx context.Context, p *model.TuitionPost) error
	SetApproval(ctx context.Context, id uuid.UUID, status model.ApprovalStatus) error
	MarkBooked(ctx context.Context, id, bookedBy uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, status model.ApprovalStatus) (int, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, a *model.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error)
	FindByPostAndApplicant(ctx context.Context, postID, applicantID uuid.UUID) (*model.Application, error)
	ListByPostOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*model.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ApplicationStatus) (*model.Application, error)
	Count(ctx context.Context) (int, error)
}

type TutorRequestRepository interface {
	Create(ctx context.Context, req *model.TutorRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.TutorRequest, error)
	HasPendingRequest(ctx context.Context, studentID, tutorID uuid.UUID) (bool, error)
	Latest(ctx context.Context, studentID, tutorID uuid.UUID) (*model.TutorRequest, error)
	ListByTutor(ctx context.Context, tutorID uuid.UUID) ([]*model.TutorRequest, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*model.TutorRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.RequestStatus) (*model.TutorRequest, error)
}

// IdentityProvider creates credentials for a new account and returns its id.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (uuid.UUID, error)
}
