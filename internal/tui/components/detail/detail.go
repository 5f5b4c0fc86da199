// Package detail shows the focused parameter's help and declaration.
package detail

import (
	"fmt"
	"strings"

	"github.com/billie-coop/rsvp/internal/params"
	"github.com/billie-coop/rsvp/internal/tui/components/core"
	"github.com/billie-coop/rsvp/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// Model renders one parameter's help as markdown.
type Model struct {
	core.SizeableBase

	param    *params.Parameter
	rendered string
}

var _ core.Sizeable = (*Model)(nil)

// New creates an empty detail pane.
func New() *Model {
	return &Model{}
}

// SetSize sets the pane size and re-renders.
func (m *Model) SetSize(width, height int) tea.Cmd {
	m.Width = width
	m.Height = height
	m.render()
	return nil
}

// SetParameter shows p. Nil clears the pane.
func (m *Model) SetParameter(p *params.Parameter) {
	if p == nil && m.param == nil {
		return
	}
	if p != nil && m.param != nil && p.Name == m.param.Name {
		return
	}
	m.param = p
	m.render()
}

// Markdown returns the document the pane renders for p.
func Markdown(p params.Parameter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** `%s`\n\n", p.DisplayLabel(), p.Name)
	if help := strings.TrimSpace(p.Help); help != "" {
		b.WriteString(help)
		b.WriteString("\n\n")
	}

	facts := []string{
		fmt.Sprintf("type: %s", p.Type),
		fmt.Sprintf("default: `%s`", p.Type.Format(p.Default)),
	}
	if p.Range != nil {
		facts = append(facts, fmt.Sprintf("range: %s", p.Range))
	}
	if len(p.Choices) > 0 {
		facts = append(facts, "choices: "+strings.Join(p.Choices, ", "))
	} else if s := p.SuggestionStrings(); len(s) > 0 {
		facts = append(facts, "suggested: "+strings.Join(s, ", "))
	}
	if !p.Editable {
		facts = append(facts, "read-only")
	}
	for _, f := range facts {
		b.WriteString("- " + f + "\n")
	}
	return b.String()
}

func (m *Model) render() {
	m.rendered = ""
	if m.param == nil || m.Width <= 0 {
		return
	}

	doc := Markdown(*m.param)
	r, err := styles.GetMarkdownRenderer(m.Width - 4)
	if err != nil {
		m.rendered = doc
		return
	}
	out, err := r.Render(doc)
	if err != nil {
		m.rendered = doc
		return
	}
	m.rendered = strings.Trim(out, "\n")
}

// View renders the pane
func (m *Model) View() string {
	if m.rendered == "" || m.Width <= 0 {
		return ""
	}
	s := styles.CurrentTheme().S()
	return s.Border.
		Width(m.Width - 2).
		MaxHeight(m.Height).
		Render(lipgloss.NewStyle().MaxHeight(max(m.Height-2, 1)).Render(m.rendered))
}
