package domain

import (
	"fmt"
	"strings"
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError reports every input field that failed shape validation.
type ValidationError struct {
	Fields []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Reason)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return "invalid input: " + strings.Join(parts, ", ")
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

// ErrValidation is the sentinel error for malformed input.
var ErrValidation = ValidationError{}

// UnauthenticatedError represents a request without a valid session.
type UnauthenticatedError struct{}

func (e UnauthenticatedError) Error() string {
	return "authentication required"
}

func (e UnauthenticatedError) Is(target error) bool {
	_, ok := target.(UnauthenticatedError)
	if ok {
		return true
	}
	_, ok = target.(*UnauthenticatedError)
	return ok
}

// ErrUnauthenticated is the sentinel error for missing or invalid sessions.
var ErrUnauthenticated = UnauthenticatedError{}

// ForbiddenError represents a valid session with insufficient rights on a
// specific resource.
type ForbiddenError struct {
	Reason string
}

func (e ForbiddenError) Error() string {
	if e.Reason == "" {
		return "forbidden"
	}
	return e.Reason
}

func (e ForbiddenError) Is(target error) bool {
	_, ok := target.(ForbiddenError)
	if ok {
		return true
	}
	_, ok = target.(*ForbiddenError)
	return ok
}

// ErrForbidden is the sentinel error for insufficient rights.
var ErrForbidden = ForbiddenError{}

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
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

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// InternalError represents a storage-layer or otherwise unexpected failure.
type InternalError struct {
	Message string
}

func (e InternalError) Error() string {
	if e.Message == "" {
		return "internal error"
	}
	return e.Message
}

func (e InternalError) Is(target error) bool {
	_, ok := target.(InternalError)
	if ok {
		return true
	}
	_, ok = target.(*InternalError)
	return ok
}

// ErrInternal is the sentinel error for unexpected failures.
var ErrInternal = InternalError{}
