package field

import (
	"github.com/billie-coop/rsvp/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// TextInput is a single line editor with a cursor.
type TextInput struct {
	value       []rune
	placeholder string
	focused     bool
	cursorPos   int
}

// NewTextInput creates a new text input
func NewTextInput() *TextInput {
	return &TextInput{}
}

// Value returns the current value
func (t *TextInput) Value() string {
	return string(t.value)
}

// SetValue sets the value and moves the cursor to the end.
func (t *TextInput) SetValue(value string) {
	t.value = []rune(value)
	t.cursorPos = len(t.value)
}

// SetPlaceholder sets the text shown while the input is empty.
func (t *TextInput) SetPlaceholder(placeholder string) {
	t.placeholder = placeholder
}

// Focus focuses the input
func (t *TextInput) Focus() {
	t.focused = true
}

// Blur removes focus
func (t *TextInput) Blur() {
	t.focused = false
}

// Focused reports whether the input has focus.
func (t *TextInput) Focused() bool {
	return t.focused
}

// Update handles input events
func (t *TextInput) Update(msg tea.Msg) tea.Cmd {
	if !t.focused {
		return nil
	}

	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "backspace":
		if t.cursorPos > 0 {
			t.value = append(t.value[:t.cursorPos-1], t.value[t.cursorPos:]...)
			t.cursorPos--
		}
	case "delete":
		if t.cursorPos < len(t.value) {
			t.value = append(t.value[:t.cursorPos], t.value[t.cursorPos+1:]...)
		}
	case "left":
		if t.cursorPos > 0 {
			t.cursorPos--
		}
	case "right":
		if t.cursorPos < len(t.value) {
			t.cursorPos++
		}
	case "home", "ctrl+a":
		t.cursorPos = 0
	case "end", "ctrl+e":
		t.cursorPos = len(t.value)
	case "ctrl+u":
		t.value = t.value[t.cursorPos:]
		t.cursorPos = 0
	default:
		if key.Text != "" && (key.Mod == 0 || key.Mod == tea.ModShift) {
			typed := []rune(key.Text)
			rest := append(typed, t.value[t.cursorPos:]...)
			t.value = append(t.value[:t.cursorPos:t.cursorPos], rest...)
			t.cursorPos += len(typed)
		}
	}
	return nil
}

// View renders the input
func (t *TextInput) View() string {
	s := styles.CurrentTheme().S()

	if !t.focused {
		if len(t.value) == 0 && t.placeholder != "" {
			return s.Placeholder.Render(t.placeholder)
		}
		return s.Value.Render(string(t.value))
	}

	if t.cursorPos < len(t.value) {
		before := string(t.value[:t.cursorPos])
		at := s.Cursor.Render(string(t.value[t.cursorPos]))
		after := string(t.value[t.cursorPos+1:])
		return s.Value.Render(before) + at + s.Value.Render(after)
	}
	return s.Value.Render(string(t.value)) + s.Cursor.Render(" ")
}
