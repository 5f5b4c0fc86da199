package dialog

import (
	"github.com/billie-coop/rsvp/internal/tui/components/core"
	"github.com/billie-coop/rsvp/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// BaseDialog provides common dialog functionality
type BaseDialog struct {
	core.FocusableBase
	core.SizeableBase

	title     string
	isOpen    bool
	cancelled bool
}

// NewBaseDialog creates a new base dialog
func NewBaseDialog(title string) *BaseDialog {
	return &BaseDialog{title: title}
}

// IsOpen returns whether the dialog is open
func (d *BaseDialog) IsOpen() bool {
	return d.isOpen
}

// Open opens the dialog
func (d *BaseDialog) Open() tea.Cmd {
	d.isOpen = true
	d.cancelled = false
	return d.Focus()
}

// Close closes the dialog
func (d *BaseDialog) Close() tea.Cmd {
	d.isOpen = false
	return d.Blur()
}

// Cancel closes the dialog as cancelled
func (d *BaseDialog) Cancel() tea.Cmd {
	d.cancelled = true
	return d.Close()
}

// IsCancelled returns whether the dialog was cancelled
func (d *BaseDialog) IsCancelled() bool {
	return d.cancelled
}

// RenderDialog renders content in a bordered box centred on the screen.
func (d *BaseDialog) RenderDialog(content string) string {
	if !d.isOpen {
		return ""
	}
	s := styles.CurrentTheme().S()

	body := content
	if d.title != "" {
		title := s.Title.MarginBottom(1).Render(d.title)
		body = lipgloss.JoinVertical(lipgloss.Left, title, content)
	}
	box := s.BorderFocused.Padding(1, 2).Render(body)

	if d.Width <= 0 || d.Height <= 0 {
		return box
	}
	return lipgloss.Place(d.Width, d.Height, lipgloss.Center, lipgloss.Center, box)
}
