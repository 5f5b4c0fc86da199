package binder

import (
	"errors"
	"fmt"

	"github.com/billie-coop/rsvp/internal/params"
)

// ErrScreenExists is returned when a screen id is registered twice.
var ErrScreenExists = errors.New("screen already registered")

var errIncompatible = errors.New("incompatible widget")

// DuplicateBindingError reports a parameter bound twice on one screen.
type DuplicateBindingError struct {
	Screen    string
	Parameter string
}

func (e *DuplicateBindingError) Error() string {
	return fmt.Sprintf("screen %q binds %q more than once", e.Screen, e.Parameter)
}

// IncompatibleWidgetError reports a widget that cannot display its parameter.
type IncompatibleWidgetError struct {
	Screen    string
	Parameter string
	Kind      Kind
	Type      params.Type
}

func (e *IncompatibleWidgetError) Error() string {
	if e.Parameter == "" {
		return fmt.Sprintf("screen %q: %s needs a parameter", e.Screen, e.Kind)
	}
	return fmt.Sprintf("screen %q: %s cannot display %s parameter %q", e.Screen, e.Kind, e.Type, e.Parameter)
}

// UnknownScreenError reports a screen id that was never registered.
type UnknownScreenError struct {
	Screen string
}

func (e *UnknownScreenError) Error() string {
	return fmt.Sprintf("unknown screen %q", e.Screen)
}

// NotBoundError reports an edit for a parameter the screen does not bind.
type NotBoundError struct {
	Screen    string
	Parameter string
}

func (e *NotBoundError) Error() string {
	return fmt.Sprintf("screen %q does not bind %q", e.Screen, e.Parameter)
}

// ValidationError reports user input that was rejected. The widget has
// already been reverted to the parameter's current value.
type ValidationError struct {
	Screen    string
	Parameter string
	Input     string
	Err       error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Parameter, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
