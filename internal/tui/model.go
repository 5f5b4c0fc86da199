// Package tui is the terminal front end: it hosts the binder's widgets and
// drives them from key presses.
package tui

import (
	"github.com/billie-coop/rsvp/internal/app"
	"github.com/billie-coop/rsvp/internal/binder"
	"github.com/billie-coop/rsvp/internal/events"
	"github.com/billie-coop/rsvp/internal/tui/components/detail"
	"github.com/billie-coop/rsvp/internal/tui/components/dialog"
	"github.com/billie-coop/rsvp/internal/tui/components/field"
	"github.com/billie-coop/rsvp/internal/tui/components/form"
	"github.com/billie-coop/rsvp/internal/tui/components/status"
	"github.com/billie-coop/rsvp/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// Model is the root bubbletea model
type Model struct {
	width  int
	height int

	// Components
	form          *form.Model
	detail        *detail.Model
	statusBar     *status.Component
	dialogManager *dialog.Manager
	keys          KeyMap

	// Event system
	eventBroker *events.Broker
	eventSub    <-chan events.Event

	// App holds the store and the registry
	app  *app.App
	host *Host

	// UI state only
	screens []string
	active  int
	// focus is the focused row index per screen.
	focus map[string]int
}

// New creates the TUI for an app whose screens were rendered into host.
func New(appInstance *app.App, host *Host) *Model {
	styles.SetDefaultManager(styles.NewManager(appInstance.Config.Theme))

	keys := DefaultKeyMap()
	m := &Model{
		form:          form.New(),
		detail:        detail.New(),
		statusBar:     status.New(),
		dialogManager: dialog.NewManager(keys.HelpGroups()),
		keys:          keys,
		eventBroker:   appInstance.EventBroker,
		app:           appInstance,
		host:          host,
		screens:       appInstance.Registry.Screens(),
		focus:         make(map[string]int),
	}

	// Subscribe to all events
	m.eventSub = m.eventBroker.Subscribe()

	m.syncStateToComponents()
	return m
}

// Init initializes the TUI model and all components
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd

	cmds = append(cmds, m.statusBar.Init())
	cmds = append(cmds, m.dialogManager.Init())

	// Start event processing
	cmds = append(cmds, m.listenForEvents())
	cmds = append(cmds, m.listenForFileChanges())

	cmds = append(cmds, m.statusBar.ShowInfo("Press ? for keys"))
	return tea.Batch(cmds...)
}

// Update handles all TUI updates and routes to components
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle events that come as messages
	if event, ok := msg.(events.Event); ok {
		cmd := m.handleEvent(event)
		// Continue listening for more events
		return m, tea.Batch(cmd, m.listenForEvents())
	}

	// If a dialog is open, route input to it first
	if m.dialogManager.IsDialogOpen() {
		dialogModel, cmd := m.dialogManager.Update(msg)
		if dm, ok := dialogModel.(*dialog.Manager); ok {
			m.dialogManager = dm
		}
		cmds = append(cmds, cmd)

		// Don't process key events further if a dialog is open
		if _, ok := msg.(tea.KeyPressMsg); ok {
			return m, tea.Batch(cmds...)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cmds = append(cmds, m.resizeComponents())
		m.syncStateToComponents()

	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKey(msg))
		return m, tea.Batch(cmds...)

	case dialog.ImportRequestedMsg:
		cmds = append(cmds, m.handleImport(msg.Path))

	case saveDoneMsg:
		m.syncStatus()

	case fileChangedMsg:
		cmds = append(cmds, m.handleFileChanged(msg.path), m.listenForFileChanges())
	}

	statusModel, cmd := m.statusBar.Update(msg)
	if sbm, ok := statusModel.(*status.Component); ok {
		m.statusBar = sbm
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKey routes a key press. While a row is being edited every key but
// enter and esc goes to its editor.
func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	handle, f := m.focused()
	if f != nil && f.Editing() {
		switch {
		case key.Matches(msg, m.keys.Edit):
			return m.commit(handle, f.CommitEdit())
		case key.Matches(msg, m.keys.Cancel):
			f.CancelEdit()
			m.syncRows()
			return nil
		}
		cmd := f.Update(msg)
		m.syncRows()
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.handleQuit()
	case key.Matches(msg, m.keys.Help):
		return m.dialogManager.OpenDialog(dialog.HelpDialogType)
	case key.Matches(msg, m.keys.Save):
		return m.saveCmd()
	case key.Matches(msg, m.keys.Import):
		return m.dialogManager.OpenDialog(dialog.ImportDialogType)
	case key.Matches(msg, m.keys.NextScreen):
		m.switchScreen(1)
	case key.Matches(msg, m.keys.PrevScreen):
		m.switchScreen(-1)
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.ResetAll):
		return m.handleResetAll()
	case key.Matches(msg, m.keys.Reset):
		return m.handleReset(f)
	case key.Matches(msg, m.keys.Edit):
		return m.activate(handle, f)
	case key.Matches(msg, m.keys.Toggle):
		return m.toggle(handle, f)
	case key.Matches(msg, m.keys.Prev):
		return m.adjust(handle, f, -1)
	case key.Matches(msg, m.keys.Next):
		return m.adjust(handle, f, 1)
	}
	return nil
}

// View renders the entire TUI
func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m *Model) render() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	// Overlay dialog if one is open
	if m.dialogManager.IsDialogOpen() {
		if dialogView := m.dialogManager.View(); dialogView != "" {
			return dialogView
		}
	}

	s := styles.CurrentTheme().S()
	title := styles.RenderTitle("RSVP Keyboard") + s.Muted.Render("  parameters")

	body := lipgloss.NewStyle().Width(m.formWidth()).Height(m.bodyHeight()).Render(m.form.View())
	if m.detailWidth() > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.detail.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.renderTabs(),
		body,
		m.statusBar.View(),
	)
}

func (m *Model) renderTabs() string {
	s := styles.CurrentTheme().S()
	var tabs []string
	for i, id := range m.screens {
		if i == m.active {
			tabs = append(tabs, s.ActiveTab.Render(app.Title(id)))
		} else {
			tabs = append(tabs, s.Tab.Render(app.Title(id)))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// activeScreen returns the id of the screen on display.
func (m *Model) activeScreen() string {
	if len(m.screens) == 0 {
		return ""
	}
	return m.screens[m.active]
}

// focused returns the focused row of the active screen.
func (m *Model) focused() (binder.Handle, *field.Model) {
	rows := m.host.Focusable(m.activeScreen())
	if len(rows) == 0 {
		return 0, nil
	}
	i := min(m.focus[m.activeScreen()], len(rows)-1)
	return rows[i], m.host.Field(rows[i])
}
