package model

import (
	"time"

	"github.com/google/uuid"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return true
	}
	return false
}

// TutorDetails holds the fields a tutor may edit after applying.
type TutorDetails struct {
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	SSCResult          string `json:"ssc_result"`
	SSCDepartment      string `json:"ssc_department"`
	HSCResult          string `json:"hsc_result"`
	HSCDepartment      string `json:"hsc_department"`
	HonoursResult      string `json:"honours_result"`
	HonoursInstitution string `json:"honours_institution"`
	HonoursDepartment  string `json:"honours_department"`
	MastersResult      string `json:"masters_result"`
	MastersInstitution string `json:"masters_institution"`
	MastersDepartment  string `json:"masters_department"`
	Bio                string `json:"bio"`
	ProfilePictureURL  string `json:"profile_picture_url"`
}

// TutorProfile extends an account with role tutor.
type TutorProfile struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	TutorDetails
	InstitutionIDURL   string             `json:"institution_id_url"`
	NIDURL             string             `json:"nid_url"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	CreatedAt          time.Time          `json:"created_at"`
}

func (t *TutorProfile) IsApproved() bool {
	return t.VerificationStatus == VerificationApproved
}
