package entity

import "fmt"

// ValidationError reports input the client can correct.
type ValidationError struct {
	Message string
}

func NewValidationError(format string, args ...any) ValidationError {
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e ValidationError) Error() string {
	return e.Message
}

// DuplicateError reports a rating rejected by the per-source throttle.
type DuplicateError struct {
	Message string
}

func (e DuplicateError) Error() string {
	return e.Message
}

// PersistenceError reports a failed store operation. Any transaction it
// happened in has already been rolled back.
type PersistenceError struct {
	Message string
	Err     error
}

func (e PersistenceError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Err)
}

func (e PersistenceError) Unwrap() error {
	return e.Err
}

// UndeliverableError reports a notification the provider refused outright.
// Sending it again gives the same answer.
type UndeliverableError struct {
	Message string
	Err     error
}

func (e UndeliverableError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Err)
}

func (e UndeliverableError) Unwrap() error {
	return e.Err
}
