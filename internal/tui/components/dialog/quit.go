package dialog

import (
	"github.com/billie-coop/rsvp/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// QuitDialog asks for confirmation before quitting with unsaved changes.
type QuitDialog struct {
	*BaseDialog

	selectedNo bool // "No" is selected by default
}

// NewQuitDialog creates a new quit confirmation dialog
func NewQuitDialog() *QuitDialog {
	return &QuitDialog{
		BaseDialog: NewBaseDialog("Unsaved changes"),
		selectedNo: true,
	}
}

// Open opens the dialog with "No" selected.
func (d *QuitDialog) Open() tea.Cmd {
	d.selectedNo = true
	return d.BaseDialog.Open()
}

// Init initializes the dialog
func (d *QuitDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *QuitDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !d.isOpen {
		return d, nil
	}

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "ctrl+c", "y", "Y":
			// Ctrl+C while the dialog is open confirms
			return d, tea.Quit
		case "esc", "n", "N":
			return d, d.Cancel()
		case "left", "right", "tab", "h", "l":
			d.selectedNo = !d.selectedNo
		case "enter", "space", " ":
			if d.selectedNo {
				return d, d.Cancel()
			}
			return d, tea.Quit
		}
	}
	return d, nil
}

// View renders the dialog
func (d *QuitDialog) View() string {
	if !d.isOpen {
		return ""
	}
	s := styles.CurrentTheme().S()

	question := s.Bold.Render("Quit without saving your parameter changes?")

	yesStyle, noStyle := s.Option, s.Option
	if d.selectedNo {
		noStyle = s.OptionActive
	} else {
		yesStyle = s.OptionActive
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		yesStyle.Padding(0, 3).Render("Yes"),
		"  ",
		noStyle.Padding(0, 3).Render("No"),
	)
	buttons = lipgloss.NewStyle().
		Width(lipgloss.Width(question)).
		Align(lipgloss.Right).
		Render(buttons)

	help := s.Muted.Italic(true).Render("Ctrl+S first to save • Esc to cancel")
	content := lipgloss.JoinVertical(lipgloss.Center, question, "", buttons, "", help)
	return d.RenderDialog(content)
}
