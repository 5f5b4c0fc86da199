package tui

import (
	"fmt"

	"github.com/billie-coop/rsvp/internal/events"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// listenForEvents listens for events from the event broker
func (m *Model) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.eventSub
		if !ok {
			return nil
		}
		return event
	}
}

// fileChangedMsg reports that another program changed the parameters file.
type fileChangedMsg struct {
	path string
}

// listenForFileChanges waits for the next outside change of the parameters
// file. It returns nil when watching is disabled.
func (m *Model) listenForFileChanges() tea.Cmd {
	changes := m.app.Changes()
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-changes
		if !ok {
			return nil
		}
		return fileChangedMsg{path: path}
	}
}

// handleFileChanged loads an outside change unless it would overwrite
// unsaved edits.
func (m *Model) handleFileChanged(path string) tea.Cmd {
	if m.app.Store.Dirty() {
		return m.statusBar.ShowWarning(fmt.Sprintf("%s changed on disk. Press Ctrl+O to load it.", path))
	}
	if _, err := m.app.Reload(); err != nil {
		return m.statusBar.ShowError(fmt.Sprintf("Failed to reload %s: %v", path, err))
	}
	return nil
}

// handleEvent processes events from the event broker
func (m *Model) handleEvent(event events.Event) tea.Cmd {
	var cmd tea.Cmd

	switch event.Type {
	case events.ParameterChangedEvent, events.ParameterResetEvent:
		// Values were pushed into the host already; redraw and update the
		// dirty marker.
		m.syncStateToComponents()

	case events.ValidationFailedEvent:
		if payload, ok := event.Payload.(events.ValidationPayload); ok {
			cmd = m.statusBar.ShowError(fmt.Sprintf("%s: %s", payload.Name, payload.Reason))
		}
		m.syncRows()

	case events.ParametersSavedEvent:
		m.syncStatus()
		cmd = m.statusBar.ShowSuccess("Parameters successfully updated")

	case events.SaveFailedEvent:
		if payload, ok := event.Payload.(events.StorePayload); ok && payload.Err != nil {
			cmd = m.statusBar.ShowError(fmt.Sprintf("Failed to save parameters: %v", payload.Err))
		}

	case events.ParametersImportedEvent:
		m.syncStateToComponents()
		if payload, ok := event.Payload.(events.StorePayload); ok {
			if len(payload.Changed) == 0 {
				cmd = m.statusBar.ShowInfo(fmt.Sprintf("%s holds no different values", payload.Path))
				break
			}
			cmd = m.statusBar.ShowInfo(fmt.Sprintf(
				"Loaded %d changed values from %s. Press Ctrl+S to save these changes.",
				len(payload.Changed), payload.Path))
		}

	case events.ScreenRenderedEvent, events.ScreenTornDownEvent:
		m.screens = m.app.Registry.Screens()
		m.active = min(m.active, max(len(m.screens)-1, 0))
		m.syncStateToComponents()

	case events.StatusMessageEvent:
		if payload, ok := event.Payload.(events.StatusMessagePayload); ok {
			switch payload.Type {
			case "error":
				cmd = m.statusBar.ShowError(payload.Message)
			case "warning":
				cmd = m.statusBar.ShowWarning(payload.Message)
			case "success":
				cmd = m.statusBar.ShowSuccess(payload.Message)
			default:
				cmd = m.statusBar.ShowInfo(payload.Message)
			}
		}
	}

	return cmd
}
