package tui

import (
	"fmt"
	"strings"

	"github.com/billie-coop/rsvp/internal/binder"
	"github.com/billie-coop/rsvp/internal/tui/components/dialog"
	"github.com/billie-coop/rsvp/internal/tui/components/field"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// saveDoneMsg reports the end of a save started by saveCmd.
type saveDoneMsg struct {
	err error
}

// saveCmd writes the parameters off the update loop. The outcome reaches
// the status bar as a broker event.
func (m *Model) saveCmd() tea.Cmd {
	return func() tea.Msg {
		return saveDoneMsg{err: m.app.Save()}
	}
}

// handleQuit quits at once when nothing is unsaved and asks otherwise.
func (m *Model) handleQuit() tea.Cmd {
	if !m.app.Store.Dirty() {
		return tea.Quit
	}
	return m.dialogManager.OpenDialog(dialog.QuitDialogType)
}

// handleImport loads values from the file the import dialog asked for.
func (m *Model) handleImport(path string) tea.Cmd {
	path = strings.TrimSpace(path)
	if err := m.app.Import(path); err != nil {
		return m.statusBar.ShowError(fmt.Sprintf("Failed to load %s: %v", path, err))
	}
	return nil
}

// commit hands raw to the binder as the user's edit of the row at handle.
// Rejections are reported by the validation event.
func (m *Model) commit(handle binder.Handle, raw string) tea.Cmd {
	if err := m.host.Commit(handle, raw); err != nil {
		m.app.Logger.Debug("edit rejected", "error", err)
	}
	m.syncStateToComponents()
	return nil
}

// activate is enter on a row: open the editor, or flip and cycle rows that
// take no typed text.
func (m *Model) activate(handle binder.Handle, f *field.Model) tea.Cmd {
	if f == nil {
		return nil
	}
	if f.ReadOnly() {
		return m.statusBar.ShowWarning(fmt.Sprintf("%s is read-only", f.Parameter().DisplayLabel()))
	}
	if f.CanEdit() {
		f.StartEdit()
		m.syncRows()
		return nil
	}
	if raw, ok := f.Toggled(); ok {
		return m.commit(handle, raw)
	}
	return m.adjust(handle, f, 1)
}

func (m *Model) toggle(handle binder.Handle, f *field.Model) tea.Cmd {
	if f == nil {
		return nil
	}
	if raw, ok := f.Toggled(); ok {
		return m.commit(handle, raw)
	}
	if raw, ok := f.Cycled(1); ok {
		return m.commit(handle, raw)
	}
	return nil
}

// adjust moves a choice row to a neighbouring option or steps a numeric row.
func (m *Model) adjust(handle binder.Handle, f *field.Model, delta int) tea.Cmd {
	if f == nil {
		return nil
	}
	if raw, ok := f.Cycled(delta); ok {
		return m.commit(handle, raw)
	}
	if raw, ok := f.Stepped(delta); ok {
		return m.commit(handle, raw)
	}
	return nil
}

func (m *Model) handleReset(f *field.Model) tea.Cmd {
	if f == nil {
		return nil
	}
	p := f.Parameter()
	if err := m.app.Registry.Reset(p.Name); err != nil {
		return m.statusBar.ShowError(err.Error())
	}
	return m.statusBar.ShowInfo(fmt.Sprintf("%s reset to default", p.DisplayLabel()))
}

func (m *Model) handleResetAll() tea.Cmd {
	if err := m.app.Registry.ResetAll(); err != nil {
		return m.statusBar.ShowError(err.Error())
	}
	return m.statusBar.ShowInfo("All parameters reset to defaults")
}

// switchScreen moves delta tabs, wrapping.
func (m *Model) switchScreen(delta int) {
	n := len(m.screens)
	if n == 0 {
		return
	}
	m.active = ((m.active+delta)%n + n) % n
	m.syncStateToComponents()
}

// moveFocus moves the focused row delta places, clamped to the screen.
func (m *Model) moveFocus(delta int) {
	screen := m.activeScreen()
	rows := m.host.Focusable(screen)
	if len(rows) == 0 {
		return
	}
	i := min(m.focus[screen], len(rows)-1) + delta
	m.focus[screen] = max(0, min(i, len(rows)-1))
	m.syncStateToComponents()
}
