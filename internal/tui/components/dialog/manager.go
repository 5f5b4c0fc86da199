package dialog

import (
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// DialogType identifies the type of dialog
type DialogType string

const (
	QuitDialogType   DialogType = "quit"
	ImportDialogType DialogType = "import"
	HelpDialogType   DialogType = "help"
)

// Manager manages all dialogs in the application
type Manager struct {
	dialogs      map[DialogType]Dialog
	activeDialog DialogType
	width        int
	height       int
}

// NewManager creates a new dialog manager. helpGroups feed the help dialog.
func NewManager(helpGroups [][]key.Binding) *Manager {
	return &Manager{
		dialogs: map[DialogType]Dialog{
			QuitDialogType:   NewQuitDialog(),
			ImportDialogType: NewImportDialog(),
			HelpDialogType:   NewHelpDialog(helpGroups),
		},
	}
}

// Init initializes all dialogs
func (m *Manager) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, dialog := range m.dialogs {
		cmds = append(cmds, dialog.Init())
	}
	return tea.Batch(cmds...)
}

// Update handles updates for the active dialog
func (m *Manager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(wsm.Width, wsm.Height)
	}
	if m.activeDialog == "" {
		return m, nil
	}

	dialog := m.dialogs[m.activeDialog]
	model, cmd := dialog.Update(msg)
	if d, ok := model.(Dialog); ok {
		m.dialogs[m.activeDialog] = d
		if !d.IsOpen() {
			m.activeDialog = ""
		}
	}
	return m, cmd
}

// View renders the active dialog
func (m *Manager) View() string {
	if m.activeDialog == "" {
		return ""
	}
	return m.dialogs[m.activeDialog].View()
}

// SetSize sets the size for all dialogs
func (m *Manager) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height

	var cmds []tea.Cmd
	for _, dialog := range m.dialogs {
		cmds = append(cmds, dialog.SetSize(width, height))
	}
	return tea.Batch(cmds...)
}

// OpenDialog opens a specific dialog
func (m *Manager) OpenDialog(dialogType DialogType) tea.Cmd {
	if dialog, ok := m.dialogs[dialogType]; ok {
		m.activeDialog = dialogType
		return dialog.Open()
	}
	return nil
}

// IsDialogOpen returns whether any dialog is open
func (m *Manager) IsDialogOpen() bool {
	return m.activeDialog != ""
}

// GetActiveDialog returns the currently active dialog type
func (m *Manager) GetActiveDialog() DialogType {
	return m.activeDialog
}
