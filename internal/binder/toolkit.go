package binder

import "github.com/billie-coop/rsvp/internal/params"

// Handle identifies a widget built by a Toolkit. Zero means no widget.
type Handle uint64

// Widget is everything a toolkit needs to build one widget.
type Widget struct {
	Spec WidgetSpec
	// Parameter is a snapshot taken at render time; the zero value for
	// containers. Widgets must not treat it as their own copy of the value.
	Parameter params.Parameter
	// Value is the text to display initially.
	Value string
	// Parent is the enclosing container, or zero.
	Parent Handle
}

// ChangeFunc receives the text a user entered into a widget. A non-nil
// error means the input was rejected and the widget has been reverted; the
// toolkit should show the error next to the widget.
type ChangeFunc func(raw string) error

// Toolkit is the host UI the registry drives. Implementations must not call
// back into the Registry from inside these methods.
type Toolkit interface {
	// Construct builds a widget on the named screen.
	Construct(screen string, w Widget) (Handle, error)
	// SetDisplayed replaces the text a widget shows.
	SetDisplayed(h Handle, value string)
	// Entered returns the text currently in a widget.
	Entered(h Handle) string
	// Listen registers the callback for user edits of a widget.
	Listen(h Handle, fn ChangeFunc)
	// Destroy removes a widget.
	Destroy(h Handle)
}
