// Package apperr defines the error type used across the application.
package apperr

// Error is an application error with a stable, user-presentable
// message and an optional underlying cause.
type Error struct {
	Err     error
	Message string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns a copy of the error with the given cause attached.
func (e *Error) Wrap(err error) *Error {
	return &Error{Message: e.Message, Err: err}
}
