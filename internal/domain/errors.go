package domain

import (
	"errors"
	"fmt"
)

// ValidationError is detected before any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// RemoteError covers non-2xx responses and transport failures (Status 0).
type RemoteError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// NotFound reports whether the backend answered 404.
func (e *RemoteError) NotFound() bool { return e.Status == 404 }

// SchemaError means the backend answered 2xx with a body of the wrong shape.
type SchemaError struct {
	Op  string
	Err error
}

func (e *SchemaError) Error() string { return e.Op + ": unexpected response: " + e.Err.Error() }

func (e *SchemaError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsRemote(err error) bool {
	var r *RemoteError
	return errors.As(err, &r)
}

func IsSchema(err error) bool {
	var s *SchemaError
	return errors.As(err, &s)
}
