package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailTaken              = errors.New("email already registered")
	ErrAdminAccessRequired     = errors.New("admin access required")
	ErrReviewerAccessRequired  = errors.New("reviewer access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
