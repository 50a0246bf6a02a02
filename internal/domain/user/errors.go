package user

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserInactive         = errors.New("user account is inactive")
	ErrAdminAccessRequired  = errors.New("admin role required")
	ErrKepalaAccessRequired = errors.New("kepala or admin role required")
	ErrPermissionDenied     = errors.New("insufficient permissions")
	ErrInvalidRole          = errors.New("invalid role")
)
