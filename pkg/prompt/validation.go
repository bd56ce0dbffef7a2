package prompt

import "github.com/pkg/errors"

// ValidationError reports document inputs too incomplete to build a prompt
// from. The reason is written for end users, so callers can surface it
// directly.
type ValidationError struct {
	Reason string
}

// Error returns the user-facing reason.
func (e *ValidationError) Error() (msg string) {
	msg = e.Reason
	return msg
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) (ok bool) {
	var vErr *ValidationError
	ok = errors.As(err, &vErr)
	return ok
}
