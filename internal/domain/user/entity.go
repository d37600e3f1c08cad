package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access: employees, settings, audit deletes
	RoleReviewer Role = "reviewer" // Can review pending attendance records
)

type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user holds the administrator role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanReview checks if user can approve or reject attendance records
func (u *User) CanReview() bool {
	return u.Role == RoleAdmin || u.Role == RoleReviewer
}

// IsValidRole reports whether r is a known role.
func IsValidRole(r string) bool {
	switch Role(r) {
	case RoleAdmin, RoleReviewer:
		return true
	}
	return false
}
