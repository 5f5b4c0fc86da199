package params

import (
	"errors"
	"fmt"
)

// ErrSaveInProgress is returned by Save while another save is running.
var ErrSaveInProgress = errors.New("save already in progress")

// MalformedSchemaError reports a document that is not a mapping of
// parameter objects. Nothing is loaded when it is returned.
type MalformedSchemaError struct {
	// Parameter is empty when the problem is with the document as a whole.
	Parameter string
	Reason    string
}

func (e *MalformedSchemaError) Error() string {
	if e.Parameter == "" {
		return "malformed parameters document: " + e.Reason
	}
	return fmt.Sprintf("malformed parameters document: %q: %s", e.Parameter, e.Reason)
}

// InvalidParameterError reports a parameter whose declaration violates its
// own type or range, for example a default outside the declared range.
type InvalidParameterError struct {
	Name  string
	Field string
	Err   error
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q (%s): %v", e.Name, e.Field, e.Err)
}

func (e *InvalidParameterError) Unwrap() error { return e.Err }

// InvalidValueError reports a rejected assignment. The parameter keeps its
// previous value.
type InvalidValueError struct {
	Name  string
	Value any
	Err   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %v for %q: %v", e.Value, e.Name, e.Err)
}

func (e *InvalidValueError) Unwrap() error { return e.Err }

// UnknownParameterError reports a name that is not in the store.
type UnknownParameterError struct {
	Name string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("unknown parameter %q", e.Name)
}
