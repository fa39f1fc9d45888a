package model

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application is a tutor's response to a tuition post.
type Application struct {
	ID          uuid.UUID         `json:"id"`
	PostID      uuid.UUID         `json:"post_id"`
	ApplicantID uuid.UUID         `json:"applicant_id"`
	PostOwnerID uuid.UUID         `json:"post_owner_id"` // copied from the post at apply time
	Message     string            `json:"message"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (a *Application) IsAccepted() bool {
	return a.Status == ApplicationAccepted
}
