package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleAdmin:
		return true
	}
	return false
}

// Account is the base profile every user gets at registration.
type Account struct {
	ID                uuid.UUID `json:"id"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Gender            string    `json:"gender"`
	Role              Role      `json:"role"`
	Address           string    `json:"address"`
	ProfilePictureURL *string   `json:"profile_picture_url"`
	CreatedAt         time.Time `json:"created_at"`
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Contact returns the display fields other records borrow from an account.
func (a *Account) Contact() Contact {
	return Contact{
		FullName: a.FullName,
		Email:    a.Email,
		Phone:    a.Phone,
		Address:  a.Address,
	}
}
