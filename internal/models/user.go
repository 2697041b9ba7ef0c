package models

import (
	"time"
)

type Role string

const (
	RoleStudent    Role = "student"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// ValidRole reports whether r is one of the known account roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	FullName     string    `gorm:"type:varchar(100);not null" json:"fullName"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"` // Never expose password hash in JSON
	Role         Role      `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the account view returned by register/login.
// The password hash never leaves the service layer.
type PublicUser struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
	}
}
