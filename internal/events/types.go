package events

// EventType identifies the type of event
type EventType string

const (
	// Parameter events
	ParameterChangedEvent EventType = "parameter.changed"
	ParameterResetEvent   EventType = "parameter.reset"
	ValidationFailedEvent EventType = "parameter.invalid"

	// Store events
	ParametersSavedEvent    EventType = "store.saved"
	ParametersImportedEvent EventType = "store.imported"
	SaveFailedEvent         EventType = "store.save_failed"

	// Screen events
	ScreenRenderedEvent EventType = "screen.rendered"
	ScreenTornDownEvent EventType = "screen.torn_down"

	// UI events
	StatusMessageEvent EventType = "ui.status"
)

// Event represents an event in the system
type Event struct {
	Type    EventType
	Payload interface{}
}

// ParameterPayload describes a value change. Screen is empty when the change
// did not come from a user edit.
type ParameterPayload struct {
	Name     string
	Screen   string
	Previous any
	Value    any
}

// ValidationPayload describes rejected user input.
type ValidationPayload struct {
	Name   string
	Screen string
	Input  string
	Reason string
}

// StorePayload describes a save or import.
type StorePayload struct {
	Path    string
	Changed []string
	Err     error
}

// ScreenPayload names a screen.
type ScreenPayload struct {
	Screen string
}

// StatusMessagePayload is a one-line message for the status bar.
type StatusMessagePayload struct {
	Message string
	Type    string // "info", "warning", "error", "success"
}
