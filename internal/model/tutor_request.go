package model

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// TutorRequest represents a student's direct outreach to a tutor.
// Resolved requests stay as history; only a pending one blocks a new request.
type TutorRequest struct {
	ID        uuid.UUID     `json:"id"`
	StudentID uuid.UUID     `json:"student_id"`
	TutorID   uuid.UUID     `json:"tutor_id"`
	Message   string        `json:"message"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// IsPending checks if request is pending
func (r *TutorRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}
