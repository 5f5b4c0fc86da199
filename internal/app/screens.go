package app

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/billie-coop/rsvp/internal/binder"
	"github.com/billie-coop/rsvp/internal/params"
)

// Screen ids.
const (
	SessionScreen    = "session"
	ParametersScreen = "parameters"
)

// generalSection holds parameters that declare no section.
const generalSection = "General"

// sessionParameters are shown on the session screen when the store
// declares them.
var sessionParameters = []string{"user_id", "task_text", "acq_mode", "fake_data", "signal_model_path"}

// Screen is a screen id with its bindings.
type Screen struct {
	ID       string
	Title    string
	Bindings []binder.Binding
}

// Screens returns the screens for store: a short session screen and a
// parameters screen with every parameter grouped by section.
func Screens(store *params.Store) []Screen {
	var session []binder.Binding
	for _, name := range sessionParameters {
		if !store.Has(name) {
			continue
		}
		if name == "user_id" {
			session = append(session, binder.Bind(binder.TextEntry{Placeholder: "participant id"}, name))
			continue
		}
		session = append(session, binder.Auto(name))
	}

	screens := []Screen{}
	if len(session) > 0 {
		screens = append(screens, Screen{ID: SessionScreen, Title: "Session", Bindings: session})
	}
	screens = append(screens, Screen{ID: ParametersScreen, Title: "Parameters", Bindings: sections(store)})
	return screens
}

// sections groups every parameter into a container per section, in order
// of each section's first parameter.
func sections(store *params.Store) []binder.Binding {
	var order []string
	grouped := make(map[string][]binder.Binding)
	for _, p := range store.All() {
		section := p.Section
		if section == "" {
			section = generalSection
		}
		if _, ok := grouped[section]; !ok {
			order = append(order, section)
		}
		grouped[section] = append(grouped[section], binder.Auto(p.Name))
	}

	out := make([]binder.Binding, 0, len(order))
	for _, section := range order {
		out = append(out, binder.Container(binder.ScrollContainer{Title: SectionTitle(section)}, grouped[section]...))
	}
	return out
}

var titleCaser = cases.Title(language.English)

// SectionTitle turns a section key like "bci_config" into "Bci Config".
func SectionTitle(section string) string {
	return titleCaser.String(strings.ReplaceAll(section, "_", " "))
}

// Title returns the display title of a screen id.
func Title(id string) string {
	switch id {
	case SessionScreen:
		return "Session"
	case ParametersScreen:
		return "Parameters"
	}
	return SectionTitle(id)
}
