package shared

import "errors"

var (
	// common errors
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("already exists")
	ErrTransient = errors.New("store temporarily unavailable")

	// input errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidCategory = errors.New("invalid category")

	// auth-specific errors
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("user already exists")
	ErrInvalidResetCode   = errors.New("invalid or expired reset token")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidAuthHeader  = errors.New("invalid auth header format")
)
