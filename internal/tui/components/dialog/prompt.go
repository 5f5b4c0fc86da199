package dialog

import (
	"strings"

	"github.com/billie-coop/rsvp/internal/tui/components/field"
	"github.com/billie-coop/rsvp/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// ImportRequestedMsg asks the application to import the file at Path.
type ImportRequestedMsg struct {
	Path string
}

// ImportDialog asks for the path of a parameters file to load values from.
type ImportDialog struct {
	*BaseDialog

	input *field.TextInput
	err   string
}

// NewImportDialog creates a new import dialog
func NewImportDialog() *ImportDialog {
	input := field.NewTextInput()
	input.SetPlaceholder("path/to/parameters.json")
	return &ImportDialog{
		BaseDialog: NewBaseDialog("Load parameters"),
		input:      input,
	}
}

// Open opens the dialog with an empty input.
func (d *ImportDialog) Open() tea.Cmd {
	d.input.SetValue("")
	d.input.Focus()
	d.err = ""
	return d.BaseDialog.Open()
}

// Init initializes the dialog
func (d *ImportDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *ImportDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !d.isOpen {
		return d, nil
	}

	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d, nil
	}
	switch key.String() {
	case "esc":
		return d, d.Cancel()
	case "enter":
		path := strings.TrimSpace(d.input.Value())
		if path == "" {
			d.err = "Enter a file path"
			return d, nil
		}
		return d, tea.Batch(d.Close(), func() tea.Msg {
			return ImportRequestedMsg{Path: path}
		})
	}
	d.err = ""
	return d, d.input.Update(msg)
}

// View renders the dialog
func (d *ImportDialog) View() string {
	if !d.isOpen {
		return ""
	}
	s := styles.CurrentTheme().S()

	input := s.InputFocused.Width(50).Render(d.input.View())
	lines := []string{
		s.Muted.Render("Values for parameters this file shares with the form are loaded."),
		input,
	}
	if d.err != "" {
		lines = append(lines, s.Error.Render(d.err))
	}
	lines = append(lines, s.Muted.Italic(true).Render("Enter to load • Esc to cancel"))
	return d.RenderDialog(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
