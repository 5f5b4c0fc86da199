package binder

import (
	"math"

	"github.com/billie-coop/rsvp/internal/params"
)

// Kind identifies a widget variant.
type Kind string

const (
	KindToggle          Kind = "toggle"
	KindNumericEntry    Kind = "numeric-entry"
	KindChoiceList      Kind = "choice-list"
	KindTextEntry       Kind = "text-entry"
	KindScrollContainer Kind = "scroll-container"
)

// WidgetSpec describes the widget a binding asks the toolkit to build.
// The set of specs is closed: Toggle, NumericEntry, ChoiceList, TextEntry
// and ScrollContainer.
type WidgetSpec interface {
	Kind() Kind
	// bind checks that the spec can display p. p is nil for containers.
	bind(p *params.Parameter) error
}

// Toggle is an on/off switch for a boolean parameter.
type Toggle struct{}

// NumericEntry is a text field restricted to numbers.
type NumericEntry struct {
	// Step is the increment used by toolkits that offer +/- controls.
	// Zero means 1 for integers and 0.1 for floats. Integer parameters
	// need a whole step.
	Step float64
}

// ChoiceList offers a fixed list of values: the choices of a choice
// parameter, or the suggestions of any other parameter.
type ChoiceList struct {
	// AllowCustom lets the user type a value that is not listed.
	AllowCustom bool
}

// TextEntry is a free text field. Any parameter type can be edited as text.
type TextEntry struct {
	Placeholder string
	// Browse asks the toolkit for a file or directory picker affordance.
	Browse bool
}

// ScrollContainer groups other bindings in a scrollable panel.
type ScrollContainer struct {
	Title string
}

func (Toggle) Kind() Kind          { return KindToggle }
func (NumericEntry) Kind() Kind    { return KindNumericEntry }
func (ChoiceList) Kind() Kind      { return KindChoiceList }
func (TextEntry) Kind() Kind       { return KindTextEntry }
func (ScrollContainer) Kind() Kind { return KindScrollContainer }

func (Toggle) bind(p *params.Parameter) error {
	if p == nil || p.Type != params.Boolean {
		return errIncompatible
	}
	return nil
}

func (n NumericEntry) bind(p *params.Parameter) error {
	if p == nil || !p.Type.IsNumeric() {
		return errIncompatible
	}
	// an integer row can only move in whole steps
	if p.Type == params.Integer && n.Step != math.Trunc(n.Step) {
		return errIncompatible
	}
	return nil
}

func (ChoiceList) bind(p *params.Parameter) error {
	if p == nil || p.Type == params.Boolean || len(Options(*p)) == 0 {
		return errIncompatible
	}
	return nil
}

func (TextEntry) bind(p *params.Parameter) error {
	if p == nil {
		return errIncompatible
	}
	return nil
}

func (ScrollContainer) bind(p *params.Parameter) error {
	if p != nil {
		return errIncompatible
	}
	return nil
}

// StepFor returns the increment a NumericEntry uses for p.
func (n NumericEntry) StepFor(p params.Parameter) float64 {
	if n.Step != 0 {
		return n.Step
	}
	if p.Type == params.Integer {
		return 1
	}
	return 0.1
}

// Options returns the values a ChoiceList shows for p.
func Options(p params.Parameter) []string {
	if p.Type == params.Choice {
		return p.Choices
	}
	return p.SuggestionStrings()
}

// SpecFor picks the widget a parameter gets when a binding does not name
// one: booleans toggle, paths get a browsable text entry, choice parameters
// and parameters with suggestions get a list, numbers get a numeric entry
// and everything else a text entry.
func SpecFor(p params.Parameter) WidgetSpec {
	switch {
	case p.Type == params.Boolean:
		return Toggle{}
	case p.Type.IsPath():
		return TextEntry{Browse: true}
	case p.Type == params.Choice:
		return ChoiceList{}
	case len(p.Suggested) > 0:
		return ChoiceList{AllowCustom: true}
	case p.Type.IsNumeric():
		return NumericEntry{}
	}
	return TextEntry{}
}
