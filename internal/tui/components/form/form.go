// Package form lays out a screen's rows in a scrollable viewport.
package form

import (
	"strings"

	"github.com/billie-coop/rsvp/internal/tui/components/core"
	"github.com/billie-coop/rsvp/internal/tui/components/field"
	"github.com/billie-coop/rsvp/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// Row is one line group of the form: a section heading when Field is nil,
// otherwise a parameter row.
type Row struct {
	Title   string
	Field   *field.Model
	Depth   int
	Focused bool
}

// Model renders rows into a viewport and keeps the focused row in view.
type Model struct {
	core.SizeableBase

	viewport viewport.Model
	rows     []Row
	// offset is the first visible line.
	offset int
}

var _ core.Sizeable = (*Model)(nil)

// New creates an empty form.
func New() *Model {
	return &Model{viewport: viewport.New()}
}

// SetSize sets the dimensions of the form
func (m *Model) SetSize(width, height int) tea.Cmd {
	m.Width = width
	m.Height = height

	m.viewport = viewport.New(
		viewport.WithWidth(width),
		viewport.WithHeight(height),
	)
	m.refresh()
	return nil
}

// SetRows replaces the rows and scrolls the focused row into view.
func (m *Model) SetRows(rows []Row) {
	m.rows = rows
	m.refresh()
}

// View renders the form
func (m *Model) View() string {
	return m.viewport.View()
}

// Content returns the full form text, ignoring scrolling.
func (m *Model) Content() string {
	content, _, _ := m.render()
	return content
}

func (m *Model) refresh() {
	content, top, bottom := m.render()
	m.viewport.SetContent(content)

	if m.Height > 0 && top >= 0 {
		switch {
		case top < m.offset:
			m.offset = top
		case bottom >= m.offset+m.Height:
			m.offset = bottom - m.Height + 1
		}
	}
	m.viewport.SetYOffset(m.offset)
}

// Offset returns the first visible line.
func (m *Model) Offset() int {
	return m.offset
}

// render returns the content and the first and last line of the focused
// row, or -1 when nothing is focused.
func (m *Model) render() (content string, top, bottom int) {
	s := styles.CurrentTheme().S()
	top, bottom = -1, -1

	var lines []string
	for _, r := range m.rows {
		indent := strings.Repeat("  ", r.Depth)
		if r.Field == nil {
			if r.Title != "" {
				title := s.Section.Render(indent + r.Title)
				lines = append(lines, strings.Split(title, "\n")...)
				lines = append(lines, s.Muted.Render(indent+strings.Repeat("─", max(lipgloss.Width(r.Title), 8))))
			}
			continue
		}

		view := r.Field.View(m.Width-2*r.Depth, r.Focused)
		rowLines := strings.Split(view, "\n")
		if r.Focused {
			top = len(lines)
			bottom = top + len(rowLines) - 1
		}
		for _, l := range rowLines {
			lines = append(lines, indent+l)
		}
	}
	return strings.Join(lines, "\n"), top, bottom
}
