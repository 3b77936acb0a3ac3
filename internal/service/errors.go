package service

import (
	"errors"
	"fmt"
)

// ErrValidation matches every input error raised before a request is sent.
var ErrValidation = errors.New("validation failed")

// ValidationError carries the exact message shown to the user.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// invalidErr turns a domain validation failure into a ValidationError.
func invalidErr(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

func wrap(action string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", action, err)
}
