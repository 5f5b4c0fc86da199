package form

import (
	"fmt"
	"strings"
	"testing"

	"github.com/billie-coop/rsvp/internal/binder"
	"github.com/billie-coop/rsvp/internal/params"
	"github.com/billie-coop/rsvp/internal/tui/components/field"
)

func fieldRows(n, focused int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		name := fmt.Sprintf("p%02d", i)
		p := params.Parameter{Name: name, Type: params.String, Value: name, Default: name, Editable: true}
		rows[i] = Row{
			Field:   field.New(binder.Widget{Spec: binder.TextEntry{}, Parameter: p, Value: name}),
			Focused: i == focused,
		}
	}
	return rows
}

func TestModel_KeepsFocusVisible(t *testing.T) {
	m := New()
	m.SetSize(60, 5)

	tests := []struct {
		name    string
		focused int
		want    int
	}{
		{name: "top", focused: 0, want: 0},
		{name: "still_visible", focused: 4, want: 0},
		{name: "below", focused: 10, want: 6},
		{name: "inside_window", focused: 8, want: 6},
		{name: "above", focused: 2, want: 2},
		{name: "last", focused: 19, want: 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.SetRows(fieldRows(20, tt.focused))
			if got := m.Offset(); got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestModel_Content(t *testing.T) {
	m := New()
	m.SetSize(60, 3)
	m.SetRows(fieldRows(4, 3))

	content := m.Content()
	if got := strings.Count(content, "\n") + 1; got != 4 {
		t.Errorf("content has %d lines, want 4", got)
	}
	if !strings.Contains(content, "p03") {
		t.Error("content lacks the last row")
	}
}
