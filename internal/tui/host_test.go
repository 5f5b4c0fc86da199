package tui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/billie-coop/rsvp/internal/binder"
	"github.com/billie-coop/rsvp/internal/params"
)

func textWidget(name string, parent binder.Handle) binder.Widget {
	return binder.Widget{
		Spec:      binder.TextEntry{},
		Parameter: params.Parameter{Name: name, Type: params.String, Value: name, Default: name, Editable: true},
		Value:     name,
		Parent:    parent,
	}
}

func TestHost_ConstructTree(t *testing.T) {
	h := NewHost()

	section, err := h.Construct("s", binder.Widget{Spec: binder.ScrollContainer{Title: "Task"}})
	if err != nil {
		t.Fatal(err)
	}
	a, _ := h.Construct("s", textWidget("a", section))
	b, _ := h.Construct("s", textWidget("b", 0))
	if _, err := h.Construct("other", textWidget("c", 0)); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]binder.Handle{a, b}, h.Focusable("s")); diff != "" {
		t.Errorf("Focusable() mismatch (-want +got):\n%s", diff)
	}

	var visited []string
	h.walk("s", func(w *widget, depth int) {
		name := w.title()
		if w.field != nil {
			name = w.field.Parameter().Name
		}
		visited = append(visited, fmt.Sprintf("%s:%d", name, depth))
	})
	if diff := cmp.Diff([]string{"Task:0", "a:1", "b:0"}, visited); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}
	if h.Field(section) != nil {
		t.Error("container has a field")
	}
}

func TestHost_ConstructErrors(t *testing.T) {
	h := NewHost()
	leaf, _ := h.Construct("s", textWidget("a", 0))

	tests := []struct {
		name string
		w    binder.Widget
	}{
		{name: "no_spec", w: binder.Widget{}},
		{name: "parent_not_container", w: textWidget("b", leaf)},
		{name: "unknown_parent", w: textWidget("c", 99)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := h.Construct("s", tt.w); err == nil {
				t.Error("Construct() succeeded")
			}
		})
	}
	if h.Len() != 1 {
		t.Errorf("Len() = %d after failed constructs, want 1", h.Len())
	}
}

func TestHost_DisplayAndCommit(t *testing.T) {
	h := NewHost()
	handle, _ := h.Construct("s", textWidget("a", 0))

	if err := h.Commit(handle, "x"); err == nil {
		t.Error("Commit() without a listener succeeded")
	}

	var got string
	h.Listen(handle, func(raw string) error {
		if raw == "bad" {
			return errors.New("rejected")
		}
		got = raw
		return nil
	})

	if err := h.Commit(handle, "bad"); err == nil {
		t.Fatal("Commit() hid the listener's error")
	}
	if h.Field(handle).Error() != "rejected" {
		t.Errorf("field error = %q", h.Field(handle).Error())
	}

	if err := h.Commit(handle, "good"); err != nil {
		t.Fatal(err)
	}
	if got != "good" || h.Field(handle).Error() != "" {
		t.Errorf("listener got %q, field error %q", got, h.Field(handle).Error())
	}

	h.SetDisplayed(handle, "shown")
	if h.Entered(handle) != "shown" {
		t.Errorf("Entered() = %q, want shown", h.Entered(handle))
	}
}

func TestHost_Destroy(t *testing.T) {
	h := NewHost()
	section, _ := h.Construct("s", binder.Widget{Spec: binder.ScrollContainer{}})
	a, _ := h.Construct("s", textWidget("a", section))
	h.Construct("s", textWidget("b", section))

	h.Destroy(a)
	if h.Len() != 2 || len(h.Focusable("s")) != 1 {
		t.Errorf("after destroying a leaf: Len() = %d, focusable = %d", h.Len(), len(h.Focusable("s")))
	}

	// destroying the container takes the remaining child with it
	h.Destroy(section)
	if h.Len() != 0 {
		t.Errorf("Len() = %d after destroying the container", h.Len())
	}
	if _, ok := h.roots["s"]; ok {
		t.Error("screen roots kept after its last widget was destroyed")
	}

	h.Destroy(section)
	if h.Entered(a) != "" {
		t.Error("destroyed widget still answers")
	}
}
