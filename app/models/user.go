package models

import "time"

// UserRole is the single role a user holds: MEMBER or ADMIN.
type UserRole string

const (
	RoleMember UserRole = "MEMBER"
	RoleAdmin  UserRole = "ADMIN"
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Email        string   `gorm:"uniqueIndex;size:191;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:32;not null;default:MEMBER"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor is the authenticated identity an operation runs as. It is passed
// explicitly into every service operation rather than read from ambient
// request state.
type Actor struct {
	Email string
	Role  UserRole
}
