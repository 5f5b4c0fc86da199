package dialog

import (
	"strings"

	"github.com/billie-coop/rsvp/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// HelpDialog lists the key bindings.
type HelpDialog struct {
	*BaseDialog

	groups [][]key.Binding
}

// NewHelpDialog creates a help dialog for the given binding groups.
func NewHelpDialog(groups [][]key.Binding) *HelpDialog {
	return &HelpDialog{
		BaseDialog: NewBaseDialog("Keys"),
		groups:     groups,
	}
}

// Init initializes the dialog
func (d *HelpDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *HelpDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !d.isOpen {
		return d, nil
	}
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "esc", "q", "?", "enter":
			return d, d.Close()
		}
	}
	return d, nil
}

// View renders the dialog
func (d *HelpDialog) View() string {
	if !d.isOpen {
		return ""
	}
	s := styles.CurrentTheme().S()

	var columns []string
	for _, group := range d.groups {
		var keys, descs []string
		for _, b := range group {
			if !b.Enabled() {
				continue
			}
			h := b.Help()
			keys = append(keys, s.LabelFocused.Render(h.Key))
			descs = append(descs, s.Muted.Render(h.Desc))
		}
		col := lipgloss.JoinHorizontal(lipgloss.Top,
			strings.Join(keys, "\n"), "  ", strings.Join(descs, "\n"))
		columns = append(columns, col, "    ")
	}
	if len(columns) > 0 {
		columns = columns[:len(columns)-1]
	}
	return d.RenderDialog(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
}
