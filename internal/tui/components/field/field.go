// Package field renders one bound parameter as a form row and turns key
// presses into the raw text the binder validates.
package field

import (
	"slices"
	"strconv"
	"strings"

	"github.com/billie-coop/rsvp/internal/binder"
	"github.com/billie-coop/rsvp/internal/params"
	"github.com/billie-coop/rsvp/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// labelWidth is the column the value starts at.
const labelWidth = 28

// Model is one form row.
type Model struct {
	kind        binder.Kind
	param       params.Parameter
	options     []string
	allowCustom bool
	browse      bool
	step        float64

	value   string
	errMsg  string
	editing bool
	input   *TextInput
}

// New creates the row for a widget the binder asked for.
func New(w binder.Widget) *Model {
	m := &Model{
		kind:  w.Spec.Kind(),
		param: w.Parameter,
		value: w.Value,
		input: NewTextInput(),
	}
	switch spec := w.Spec.(type) {
	case binder.ChoiceList:
		m.options = binder.Options(w.Parameter)
		m.allowCustom = spec.AllowCustom
	case binder.NumericEntry:
		m.step = spec.StepFor(w.Parameter)
	case binder.TextEntry:
		m.browse = spec.Browse
		m.input.SetPlaceholder(spec.Placeholder)
	}
	return m
}

// Kind returns the widget kind.
func (m *Model) Kind() binder.Kind { return m.kind }

// Parameter returns the parameter snapshot taken when the row was built.
func (m *Model) Parameter() params.Parameter { return m.param }

// Value returns the displayed value.
func (m *Model) Value() string { return m.value }

// SetValue replaces the displayed value. An open edit is discarded.
func (m *Model) SetValue(v string) {
	m.value = v
	if m.editing {
		m.CancelEdit()
	}
}

// Entered returns the text in the editor while editing, else the value.
func (m *Model) Entered() string {
	if m.editing {
		return m.input.Value()
	}
	return m.value
}

// SetError shows msg under the row until the next successful change.
func (m *Model) SetError(msg string) { m.errMsg = msg }

// Error returns the message shown under the row.
func (m *Model) Error() string { return m.errMsg }

// ReadOnly reports whether the parameter rejects edits.
func (m *Model) ReadOnly() bool { return !m.param.Editable }

// Editing reports whether the text editor is open.
func (m *Model) Editing() bool { return m.editing }

// CanEdit reports whether the row takes typed text.
func (m *Model) CanEdit() bool {
	switch m.kind {
	case binder.KindNumericEntry, binder.KindTextEntry:
		return true
	case binder.KindChoiceList:
		return m.allowCustom
	}
	return false
}

// StartEdit opens the text editor on the current value.
func (m *Model) StartEdit() {
	if !m.CanEdit() {
		return
	}
	m.editing = true
	m.input.SetValue(m.value)
	m.input.Focus()
}

// CancelEdit closes the editor and keeps the value.
func (m *Model) CancelEdit() {
	m.editing = false
	m.input.Blur()
}

// CommitEdit closes the editor and returns what was typed.
func (m *Model) CommitEdit() string {
	raw := m.input.Value()
	m.CancelEdit()
	return raw
}

// Update feeds key presses to the editor.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if !m.editing {
		return nil
	}
	return m.input.Update(msg)
}

// Toggled returns the raw text that flips a toggle.
func (m *Model) Toggled() (string, bool) {
	if m.kind != binder.KindToggle {
		return "", false
	}
	on, _ := strconv.ParseBool(m.value)
	return strconv.FormatBool(!on), true
}

// Cycled returns the option delta places from the current value, wrapping.
// A value not in the list moves to the first or last option.
func (m *Model) Cycled(delta int) (string, bool) {
	if m.kind != binder.KindChoiceList || len(m.options) == 0 {
		return "", false
	}
	n := len(m.options)
	i := slices.Index(m.options, m.value)
	switch {
	case i < 0 && delta > 0:
		i = 0
	case i < 0:
		i = n - 1
	default:
		i = ((i+delta)%n + n) % n
	}
	return m.options[i], true
}

// Stepped returns the numeric value moved by delta steps.
func (m *Model) Stepped(delta int) (string, bool) {
	if m.kind != binder.KindNumericEntry {
		return "", false
	}
	if m.param.Type == params.Integer {
		i, err := strconv.ParseInt(m.value, 10, 64)
		if err != nil {
			return "", false
		}
		return strconv.FormatInt(i+int64(delta)*int64(m.step), 10), true
	}
	f, err := strconv.ParseFloat(m.value, 64)
	if err != nil {
		return "", false
	}
	next := f + float64(delta)*m.step
	// keep 0.1 steps from drifting into 0.30000000000000004
	next, _ = strconv.ParseFloat(strconv.FormatFloat(next, 'f', 10, 64), 64)
	return strconv.FormatFloat(next, 'g', -1, 64), true
}

// Modified reports whether the displayed value differs from the default.
func (m *Model) Modified() bool {
	return m.value != m.param.Type.Format(m.param.Default)
}

// Height returns the number of lines View renders.
func (m *Model) Height() int {
	h := 1
	if m.subtitle() != "" {
		h++
	}
	if m.errMsg != "" {
		h++
	}
	return h
}

// subtitle is the help line under the label. Help that only repeats the
// label is not shown.
func (m *Model) subtitle() string {
	help := strings.TrimSpace(m.param.Help)
	if help == "" || help == m.param.DisplayLabel() {
		return ""
	}
	if i := strings.IndexByte(help, '\n'); i >= 0 {
		help = help[:i]
	}
	return help
}

// View renders the row.
func (m *Model) View(width int, focused bool) string {
	s := styles.CurrentTheme().S()

	labelStyle := s.Label
	marker := "  "
	if focused {
		labelStyle = s.LabelFocused
		marker = "▸ "
	}
	label := m.param.DisplayLabel()
	if m.Modified() {
		label += " " + s.Modified.Render(styles.ModifiedIcon)
	}
	head := lipgloss.NewStyle().Width(labelWidth).Render(labelStyle.Render(marker + label))
	row := lipgloss.JoinHorizontal(lipgloss.Top, head, m.renderValue(focused))

	lines := []string{row}
	if sub := m.subtitle(); sub != "" {
		lines = append(lines, s.Muted.Width(max(width-4, 10)).MaxHeight(1).Render("    "+sub))
	}
	if m.errMsg != "" {
		lines = append(lines, s.Error.Render("    "+styles.ErrorIcon+" "+m.errMsg))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderValue(focused bool) string {
	s := styles.CurrentTheme().S()

	if m.editing {
		return m.input.View()
	}
	if m.ReadOnly() {
		return s.ValueReadOnly.Render(m.value) + " " + styles.LockIcon
	}

	switch m.kind {
	case binder.KindToggle:
		on, _ := strconv.ParseBool(m.value)
		if on {
			return s.Value.Render(styles.ToggleOn + " on")
		}
		return s.Value.Render(styles.ToggleOff + " off")

	case binder.KindChoiceList:
		if !focused {
			return s.Value.Render(m.value)
		}
		var opts []string
		for _, o := range m.options {
			if o == m.value {
				opts = append(opts, s.OptionActive.Render(o))
			} else {
				opts = append(opts, s.Option.Render(o))
			}
		}
		if !slices.Contains(m.options, m.value) {
			opts = append([]string{s.OptionActive.Render(m.value)}, opts...)
		}
		return styles.ChoicePrev + " " + strings.Join(opts, " ") + " " + styles.ChoiceNext

	case binder.KindTextEntry:
		v := m.value
		if v == "" {
			v = s.Placeholder.Render("(empty)")
		} else {
			v = s.Value.Render(v)
		}
		if m.browse {
			v += " " + styles.FolderIcon
		}
		return v
	}
	return s.Value.Render(m.value)
}
