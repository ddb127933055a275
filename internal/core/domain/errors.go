package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrAccessDenied   = errors.New("access denied")
	ErrInternalServer = errors.New("internal server error")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already exists")
)

// Role errors
var (
	ErrRoleNotFound = errors.New("role not found")
	ErrRoleExists   = errors.New("role already exists")
	ErrRoleInUse    = errors.New("role is still assigned to users")
)

// Trip errors
var (
	ErrTripNotFound          = errors.New("trip not found")
	ErrItineraryItemNotFound = errors.New("itinerary item not found")
	ErrActivityNotFound      = errors.New("activity not found")
	ErrInvalidImage          = errors.New("invalid image file")
)
