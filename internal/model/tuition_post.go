package model

import (
	"time"

	"github.com/google/uuid"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// PostFields are the owner-editable parts of a tuition post.
type PostFields struct {
	ClassLevel       string `json:"class_level"`
	Group            string `json:"group"`
	Subject          string `json:"subject"`
	Salary           string `json:"salary"`
	Gender           string `json:"gender"`
	Location         string `json:"location"`
	Requirement      string `json:"requirement"`
	StudentIDCardURL string `json:"student_id_card_url"`
}

// TuitionPost is a student's advertised tutoring need.
// IsApproved always mirrors ApprovalStatus == approved; change both through SetApproval.
type TuitionPost struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"user_id"`
	PostFields
	IsApproved     bool           `json:"is_approved"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	IsBooked       bool           `json:"is_booked"`
	BookedBy       *uuid.UUID     `json:"booked_by"`
	CreatedAt      time.Time      `json:"created_at"`
}

func (p *TuitionPost) SetApproval(status ApprovalStatus) {
	p.ApprovalStatus = status
	p.IsApproved = status == ApprovalApproved
}

// ResetApproval sends the post back to review.
func (p *TuitionPost) ResetApproval() {
	p.SetApproval(ApprovalPending)
}

func (p *TuitionPost) IsOwnedBy(accountID uuid.UUID) bool {
	return p.OwnerID == accountID
}

func (p *TuitionPost) Summary() *PostSummary {
	return &PostSummary{
		ID:         p.ID,
		ClassLevel: p.ClassLevel,
		Subject:    p.Subject,
		Salary:     p.Salary,
		Location:   p.Location,
	}
}
