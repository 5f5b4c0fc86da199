package tui

import (
	"github.com/billie-coop/rsvp/internal/tui/components/form"
	"github.com/billie-coop/rsvp/internal/tui/styles"
)

// syncStateToComponents syncs all state to components
func (m *Model) syncStateToComponents() {
	m.syncRows()
	m.syncStatus()
}

// syncRows rebuilds the form rows of the active screen and points the help
// pane at the focused parameter.
func (m *Model) syncRows() {
	screen := m.activeScreen()
	focusedHandle, f := m.focused()

	var rows []form.Row
	m.host.walk(screen, func(w *widget, depth int) {
		if w.field == nil {
			rows = append(rows, form.Row{Title: w.title(), Depth: depth})
			return
		}
		rows = append(rows, form.Row{Field: w.field, Depth: depth, Focused: w.handle == focusedHandle})
	})
	m.form.SetRows(rows)

	if f == nil {
		m.detail.SetParameter(nil)
		return
	}
	p, err := m.app.Store.Get(f.Parameter().Name)
	if err != nil {
		m.detail.SetParameter(nil)
		return
	}
	m.detail.SetParameter(&p)
}

// syncStatus shows the parameters file and whether it has unsaved changes.
func (m *Model) syncStatus() {
	left := m.app.Config.Parameters
	if m.app.Store.Dirty() {
		left += " " + styles.ModifiedIcon + " unsaved"
	}
	m.statusBar.SetLeftContent(left)
}
