package domain

import "fmt"

// NotFoundError represents a missing row of the given kind.
type NotFoundError struct {
	Kind Kind
	ID   int64
}

func (e NotFoundError) Error() string {
	if e.Kind == "" {
		return "not found"
	}
	return fmt.Sprintf("%s with id %d not found", e.Kind, e.ID)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ValidationError represents a violated domain rule.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	if e.Reason == "" {
		return "validation failed"
	}
	return e.Reason
}

// Is enables errors.Is matching on ValidationError.
func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	if ok {
		return true
	}
	_, ok = target.(*ValidationError)
	return ok
}

// ErrNotFound is the sentinel error for missing rows.
var ErrNotFound = NotFoundError{}

// ErrValidation is the sentinel error for domain rule violations.
var ErrValidation = ValidationError{}
