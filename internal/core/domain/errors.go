package domain

import "errors"

// Auth errors
var (
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Enforcement errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidAction = errors.New("unrecognized enforcement action")
	ErrEmptyReason   = errors.New("enforcement reason must not be empty")
)

// Monetization errors
var (
	ErrProfileNotFound    = errors.New("monetization profile not found")
	ErrPayoutBelowMinimum = errors.New("pending payout below minimum threshold")
)
