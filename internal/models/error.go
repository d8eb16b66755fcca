package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// OTP flow errors
	ErrInvalidPhoneFormat  = errors.New("invalid phone number format")
	ErrInvalidOTPFormat    = errors.New("invalid otp format")
	ErrInvalidOrExpiredOTP = errors.New("invalid or expired otp")
	ErrInvalidOTP          = errors.New("incorrect otp")
	ErrAttemptsExceeded    = errors.New("maximum verification attempts exceeded")
	ErrDispatchFailed      = errors.New("otp dispatch failed")

	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)
