package model

import (
	"time"

	"github.com/google/uuid"
)

// Placeholders used when a joined record is missing.
const (
	UnknownValue = "Unknown"
	NotAvailable = "N/A"
)

// Contact is the slice of an account shown next to another record.
type Contact struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address,omitempty"`
}

// PostWithOwner is a post decorated with its owner's contact fields.
type PostWithOwner struct {
	*TuitionPost
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
	OwnerPhone string `json:"owner_phone"`
}

// TutorWithContact is a tutor profile flattened with its account's contact fields.
type TutorWithContact struct {
	*TutorProfile
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address,omitempty"`
}

// TutorDocuments is the admin view used to verify a tutor.
type TutorDocuments struct {
	ID                 uuid.UUID          `json:"id"`
	UserID             uuid.UUID          `json:"user_id"`
	TutorName          string             `json:"tutor_name"`
	FullName           string             `json:"full_name"`
	Email              string             `json:"email"`
	Phone              string             `json:"phone"`
	InstitutionIDURL   string             `json:"institution_id_url"`
	NIDURL             string             `json:"nid_url"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	CreatedAt          time.Time          `json:"created_at"`
}

type PostSummary struct {
	ID         uuid.UUID `json:"id"`
	ClassLevel string    `json:"class_level"`
	Subject    string    `json:"subject"`
	Salary     string    `json:"salary"`
	Location   string    `json:"location"`
}

// ApplicationView carries the post summary and whichever counterpart the reader needs:
// the applicant for the post owner, the owner for the applicant.
type ApplicationView struct {
	ID        uuid.UUID         `json:"id"`
	Message   string            `json:"message"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Post      *PostSummary      `json:"post"`
	Applicant *Contact          `json:"applicant,omitempty"`
	Owner     *Contact          `json:"owner,omitempty"`
}

type RequestForTutor struct {
	*TutorRequest
	Student *Contact `json:"student"`
}

type TutorCard struct {
	UserID    uuid.UUID `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	SSCResult string    `json:"ssc_result"`
	HSCResult string    `json:"hsc_result"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
}

type RequestForStudent struct {
	*TutorRequest
	Tutor TutorCard `json:"tutor"`
}

type ApplicationCheck struct {
	HasApplied bool               `json:"hasApplied"`
	Status     *ApplicationStatus `json:"applicationStatus"`
}

type RequestCheck struct {
	HasRequested bool           `json:"hasRequested"`
	Status       *RequestStatus `json:"status"`
}

type Stats struct {
	TotalUsers        int `json:"totalUsers"`
	TotalTutors       int `json:"totalTutors"`
	PendingTutors     int `json:"pendingTutors"`
	TotalPosts        int `json:"totalPosts"`
	TotalApplications int `json:"totalApplications"`
	PendingPosts      int `json:"pendingPosts"`
}
