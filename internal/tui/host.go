package tui

import (
	"errors"
	"fmt"
	"slices"

	"github.com/billie-coop/rsvp/internal/binder"
	"github.com/billie-coop/rsvp/internal/tui/components/field"
)

// widget is one element the binder asked the host to build.
type widget struct {
	handle   binder.Handle
	screen   string
	spec     binder.WidgetSpec
	parent   binder.Handle
	children []binder.Handle
	// field is nil for containers.
	field    *field.Model
	onChange binder.ChangeFunc
}

func (w *widget) title() string {
	if c, ok := w.spec.(binder.ScrollContainer); ok {
		return c.Title
	}
	return ""
}

// Host is the binder's toolkit for the terminal. It owns the widget tree of
// every rendered screen; the bubbletea Model draws and drives it.
type Host struct {
	next    binder.Handle
	widgets map[binder.Handle]*widget
	// roots holds each screen's top level widgets in construction order.
	roots map[string][]binder.Handle
}

var _ binder.Toolkit = (*Host)(nil)

// NewHost creates an empty host.
func NewHost() *Host {
	return &Host{
		widgets: make(map[binder.Handle]*widget),
		roots:   make(map[string][]binder.Handle),
	}
}

// Construct builds a widget on a screen.
func (h *Host) Construct(screen string, w binder.Widget) (binder.Handle, error) {
	if w.Spec == nil {
		return 0, errors.New("widget has no spec")
	}
	if w.Parent != 0 {
		parent, ok := h.widgets[w.Parent]
		if !ok || parent.field != nil {
			return 0, fmt.Errorf("parent %d is not a container", w.Parent)
		}
	}

	h.next++
	wd := &widget{handle: h.next, screen: screen, spec: w.Spec, parent: w.Parent}
	if w.Spec.Kind() != binder.KindScrollContainer {
		wd.field = field.New(w)
	}
	h.widgets[wd.handle] = wd

	if w.Parent != 0 {
		parent := h.widgets[w.Parent]
		parent.children = append(parent.children, wd.handle)
	} else {
		h.roots[screen] = append(h.roots[screen], wd.handle)
	}
	return wd.handle, nil
}

// SetDisplayed replaces the text a widget shows and clears its error.
func (h *Host) SetDisplayed(handle binder.Handle, value string) {
	if w, ok := h.widgets[handle]; ok && w.field != nil {
		w.field.SetValue(value)
		w.field.SetError("")
	}
}

// Entered returns the text in a widget.
func (h *Host) Entered(handle binder.Handle) string {
	if w, ok := h.widgets[handle]; ok && w.field != nil {
		return w.field.Entered()
	}
	return ""
}

// Listen registers the edit callback of a widget.
func (h *Host) Listen(handle binder.Handle, fn binder.ChangeFunc) {
	if w, ok := h.widgets[handle]; ok {
		w.onChange = fn
	}
}

// Destroy removes a widget. Children are expected to be destroyed first;
// any left over are removed with it.
func (h *Host) Destroy(handle binder.Handle) {
	w, ok := h.widgets[handle]
	if !ok {
		return
	}
	for _, child := range slices.Clone(w.children) {
		h.Destroy(child)
	}
	delete(h.widgets, handle)

	if w.parent != 0 {
		if parent, ok := h.widgets[w.parent]; ok {
			parent.children = slices.DeleteFunc(parent.children, func(c binder.Handle) bool { return c == handle })
		}
		return
	}
	roots := slices.DeleteFunc(h.roots[w.screen], func(c binder.Handle) bool { return c == handle })
	if len(roots) == 0 {
		delete(h.roots, w.screen)
	} else {
		h.roots[w.screen] = roots
	}
}

// Commit hands raw text to a widget's listener, as if the user had entered
// it. A rejected value is shown as the widget's error.
func (h *Host) Commit(handle binder.Handle, raw string) error {
	w, ok := h.widgets[handle]
	if !ok || w.field == nil {
		return fmt.Errorf("no editable widget %d", handle)
	}
	if w.onChange == nil {
		return fmt.Errorf("widget %d has no listener", handle)
	}
	err := w.onChange(raw)
	if err != nil {
		w.field.SetError(err.Error())
	} else {
		w.field.SetError("")
	}
	return err
}

// Field returns the row of a widget, or nil for containers and unknown
// handles.
func (h *Host) Field(handle binder.Handle) *field.Model {
	if w, ok := h.widgets[handle]; ok {
		return w.field
	}
	return nil
}

// Focusable returns the screen's editable rows in display order.
func (h *Host) Focusable(screen string) []binder.Handle {
	var out []binder.Handle
	h.walk(screen, func(w *widget, _ int) {
		if w.field != nil {
			out = append(out, w.handle)
		}
	})
	return out
}

// walk visits a screen's widgets depth-first in display order.
func (h *Host) walk(screen string, fn func(w *widget, depth int)) {
	var visit func(handles []binder.Handle, depth int)
	visit = func(handles []binder.Handle, depth int) {
		for _, handle := range handles {
			w := h.widgets[handle]
			fn(w, depth)
			visit(w.children, depth+1)
		}
	}
	visit(h.roots[screen], 0)
}

// Len returns the number of live widgets.
func (h *Host) Len() int {
	return len(h.widgets)
}
