package domain

import "errors"

var (
	ErrDuplicateEmail  = errors.New("email has already voted")
	ErrDuplicateDevice = errors.New("device has already voted")
	ErrDuplicateIP     = errors.New("ip address has already voted")
	ErrRateLimited     = errors.New("too many attempts from this ip")
	ErrCaptchaFailed   = errors.New("captcha verification failed")
	ErrInternal        = errors.New("internal server error")
)

// ValidationError carries the user-facing reason a submission failed
// validation. It is always recoverable by correcting the input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}
