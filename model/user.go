package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Role string

const (
	RoleUser       Role = "USER"
	RoleOrganizer  Role = "ORGANIZER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         Role       `json:"role"`
	ProfileImage string     `json:"profileImage,omitempty"`
	IsVerified   bool       `json:"isVerified"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// ProfileUpdate is sent as multipart/form-data; ImagePath is uploaded as
// the "profileImage" file part when set.
type ProfileUpdate struct {
	Name      string `json:"name,omitempty"`
	ImagePath string `json:"-"`
}

func (p ProfileUpdate) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Length(2, 80)),
	)
}
