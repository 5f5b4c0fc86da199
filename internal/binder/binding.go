package binder

// Binding pairs a widget spec with the parameter it displays. Container
// bindings carry children instead of a parameter.
type Binding struct {
	Spec      WidgetSpec
	Parameter string
	Children  []Binding
}

// Bind binds spec to the named parameter.
func Bind(spec WidgetSpec, name string) Binding {
	return Binding{Spec: spec, Parameter: name}
}

// Auto binds the named parameter with the widget SpecFor chooses.
func Auto(name string) Binding {
	return Binding{Parameter: name}
}

// Container groups children in a scrollable panel.
func Container(spec ScrollContainer, children ...Binding) Binding {
	return Binding{Spec: spec, Children: children}
}

// BindingState is the lifecycle state of one binding.
type BindingState int

const (
	Unbound BindingState = iota
	// Bound: registered, no widget built yet.
	Bound
	// Valid: the widget shows the parameter's current value.
	Valid
	// InvalidPendingRevert: rejected input is on screen and about to be
	// replaced. Only observable from inside OnUserEdit.
	InvalidPendingRevert
)

func (s BindingState) String() string {
	switch s {
	case Bound:
		return "bound"
	case Valid:
		return "valid"
	case InvalidPendingRevert:
		return "invalid-pending-revert"
	}
	return "unbound"
}

// boundWidget is the registry's record of one registered binding.
type boundWidget struct {
	spec      WidgetSpec
	parameter string
	children  []*boundWidget
	handle    Handle
	state     BindingState
}

func (b *boundWidget) isContainer() bool {
	return b.parameter == ""
}
