package binder

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/billie-coop/rsvp/internal/csync"
	"github.com/billie-coop/rsvp/internal/events"
	"github.com/billie-coop/rsvp/internal/params"
)

// screen is one registered set of bindings.
type screen struct {
	id       string
	roots    []*boundWidget
	byName   map[string]*boundWidget
	rendered bool
}

// walk visits every binding depth-first, parents before children.
func (s *screen) walk(fn func(parent, b *boundWidget)) {
	var visit func(parent *boundWidget, bs []*boundWidget)
	visit = func(parent *boundWidget, bs []*boundWidget) {
		for _, b := range bs {
			fn(parent, b)
			visit(b, b.children)
		}
	}
	visit(nil, s.roots)
}

// Registry declares the widgets of each screen and keeps them in step with
// the parameter store. It runs on the toolkit's event loop and is not safe
// for concurrent use, except for Save, which only touches the store.
type Registry struct {
	store   *params.Store
	toolkit Toolkit
	screens *csync.OrderedMap[string, *screen]
	broker  *events.Broker
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithBroker publishes change, validation and store events to b.
func WithBroker(b *events.Broker) Option {
	return func(r *Registry) {
		r.broker = b
	}
}

// WithLogger sets the registry's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates a registry over store that builds widgets with tk.
func NewRegistry(store *params.Store, tk Toolkit, opts ...Option) *Registry {
	r := &Registry{
		store:   store,
		toolkit: tk,
		screens: csync.NewOrderedMap[string, *screen](),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the parameter store the registry writes to.
func (r *Registry) Store() *params.Store {
	return r.store
}

// RegisterScreen declares a screen and its bindings. Every parameter must
// exist in the store and appear at most once on the screen, including
// inside containers. Nothing is registered if any binding is rejected.
func (r *Registry) RegisterScreen(id string, bindings ...Binding) error {
	if r.screens.Has(id) {
		return fmt.Errorf("%w: %q", ErrScreenExists, id)
	}

	sc := &screen{id: id, byName: make(map[string]*boundWidget)}
	var declare func(bs []Binding) ([]*boundWidget, error)
	declare = func(bs []Binding) ([]*boundWidget, error) {
		var out []*boundWidget
		for _, b := range bs {
			w, err := r.declare(sc, b)
			if err != nil {
				return nil, err
			}
			if w.children, err = declare(b.Children); err != nil {
				return nil, err
			}
			out = append(out, w)
		}
		return out, nil
	}

	roots, err := declare(bindings)
	if err != nil {
		return err
	}
	sc.roots = roots
	r.screens.Set(id, sc)
	r.logger.Debug("screen registered", "screen", id, "bindings", len(sc.byName))
	return nil
}

func (r *Registry) declare(sc *screen, b Binding) (*boundWidget, error) {
	if b.Parameter == "" {
		spec := b.Spec
		if spec == nil {
			spec = ScrollContainer{}
		}
		if spec.bind(nil) != nil {
			return nil, &IncompatibleWidgetError{Screen: sc.id, Kind: spec.Kind()}
		}
		return &boundWidget{spec: spec, state: Bound}, nil
	}

	if _, dup := sc.byName[b.Parameter]; dup {
		return nil, &DuplicateBindingError{Screen: sc.id, Parameter: b.Parameter}
	}
	p, err := r.store.Get(b.Parameter)
	if err != nil {
		return nil, fmt.Errorf("screen %q: %w", sc.id, err)
	}
	if len(b.Children) > 0 {
		return nil, fmt.Errorf("screen %q: parameter binding %q cannot have children", sc.id, b.Parameter)
	}

	spec := b.Spec
	if spec == nil {
		spec = SpecFor(p)
	}
	if spec.bind(&p) != nil {
		return nil, &IncompatibleWidgetError{Screen: sc.id, Parameter: p.Name, Kind: spec.Kind(), Type: p.Type}
	}

	w := &boundWidget{spec: spec, parameter: b.Parameter, state: Bound}
	sc.byName[b.Parameter] = w
	return w, nil
}

// RenderScreen asks the toolkit to build the screen's widgets, each seeded
// with its parameter's current value. Rendering an already rendered screen
// refreshes the displayed values.
func (r *Registry) RenderScreen(id string) error {
	sc, ok := r.screens.Get(id)
	if !ok {
		return &UnknownScreenError{Screen: id}
	}
	if sc.rendered {
		r.refresh(sc)
		return nil
	}

	var built []*boundWidget
	var err error
	sc.walk(func(parent, b *boundWidget) {
		if err != nil {
			return
		}
		w := Widget{Spec: b.spec}
		if parent != nil {
			w.Parent = parent.handle
		}
		if !b.isContainer() {
			p, getErr := r.store.Get(b.parameter)
			if getErr != nil {
				err = getErr
				return
			}
			w.Parameter = p
			w.Value = p.FormattedValue()
		}

		h, buildErr := r.toolkit.Construct(id, w)
		if buildErr != nil {
			err = fmt.Errorf("failed to build %s for %q: %w", b.spec.Kind(), b.parameter, buildErr)
			return
		}
		b.handle = h
		built = append(built, b)
		if !b.isContainer() {
			r.toolkit.Listen(h, r.listener(id, b.parameter))
		}
	})

	if err != nil {
		for i := len(built) - 1; i >= 0; i-- {
			r.toolkit.Destroy(built[i].handle)
			built[i].handle = 0
		}
		return fmt.Errorf("screen %q: %w", id, err)
	}

	sc.rendered = true
	sc.walk(func(_, b *boundWidget) { b.state = Valid })
	r.logger.Debug("screen rendered", "screen", id, "widgets", len(built))
	r.broker.Publish(events.Event{Type: events.ScreenRenderedEvent, Payload: events.ScreenPayload{Screen: id}})
	return nil
}

func (r *Registry) listener(screenID, name string) ChangeFunc {
	return func(raw string) error {
		return r.OnUserEdit(screenID, name, raw)
	}
}

func (r *Registry) refresh(sc *screen) {
	for name, b := range sc.byName {
		if b.handle == 0 {
			continue
		}
		if p, err := r.store.Get(name); err == nil {
			r.toolkit.SetDisplayed(b.handle, p.FormattedValue())
		}
	}
}

// OnUserEdit handles text a user entered into the widget bound to name on
// the given screen. The text is parsed by the parameter's type and written
// to the store. Rejected input reverts the widget to the stored value and
// returns a *ValidationError; the session carries on either way.
func (r *Registry) OnUserEdit(screenID, name, raw string) error {
	sc, ok := r.screens.Get(screenID)
	if !ok {
		return &UnknownScreenError{Screen: screenID}
	}
	b, ok := sc.byName[name]
	if !ok {
		return &NotBoundError{Screen: screenID, Parameter: name}
	}
	p, err := r.store.Get(name)
	if err != nil {
		return err
	}

	if !p.Editable {
		return r.reject(sc, b, raw, errors.New("parameter is read-only"))
	}
	v, err := p.Type.Parse(raw)
	if err != nil {
		return r.reject(sc, b, raw, err)
	}
	prev, err := r.store.Set(name, v)
	if err != nil {
		var invalid *params.InvalidValueError
		if errors.As(err, &invalid) {
			err = invalid.Err
		}
		return r.reject(sc, b, raw, err)
	}

	p, _ = r.store.Get(name)
	display := p.FormattedValue()
	if b.handle != 0 {
		r.toolkit.SetDisplayed(b.handle, display)
	}
	r.push(name, display, b)

	r.logger.Debug("parameter edited", "screen", screenID, "parameter", name, "previous", prev, "value", p.Value)
	r.broker.Publish(events.Event{
		Type:    events.ParameterChangedEvent,
		Payload: events.ParameterPayload{Name: name, Screen: screenID, Previous: prev, Value: p.Value},
	})
	return nil
}

// reject reverts the widget to the stored value and reports the input.
func (r *Registry) reject(sc *screen, b *boundWidget, raw string, cause error) error {
	settled := b.state
	b.state = InvalidPendingRevert
	if p, err := r.store.Get(b.parameter); err == nil && b.handle != 0 {
		r.toolkit.SetDisplayed(b.handle, p.FormattedValue())
	}
	b.state = settled

	r.logger.Debug("input rejected", "screen", sc.id, "parameter", b.parameter, "input", raw, "error", cause)
	r.broker.Publish(events.Event{
		Type:    events.ValidationFailedEvent,
		Payload: events.ValidationPayload{Name: b.parameter, Screen: sc.id, Input: raw, Reason: cause.Error()},
	})
	return &ValidationError{Screen: sc.id, Parameter: b.parameter, Input: raw, Err: cause}
}

// OnExternalChange sets a parameter from outside its own widgets, for
// example a programmatic change, and pushes the new value into every widget
// bound to it on every screen.
func (r *Registry) OnExternalChange(name string, v any) error {
	prev, err := r.store.Set(name, v)
	if err != nil {
		return err
	}
	p, _ := r.store.Get(name)
	r.push(name, p.FormattedValue(), nil)

	r.broker.Publish(events.Event{
		Type:    events.ParameterChangedEvent,
		Payload: events.ParameterPayload{Name: name, Previous: prev, Value: p.Value},
	})
	return nil
}

// push shows display in every rendered widget bound to name except skip.
func (r *Registry) push(name, display string, skip *boundWidget) {
	r.screens.Range(func(_ string, sc *screen) bool {
		if b, ok := sc.byName[name]; ok && b != skip && b.handle != 0 {
			r.toolkit.SetDisplayed(b.handle, display)
		}
		return true
	})
}

// Reset restores a parameter's default and updates its widgets.
func (r *Registry) Reset(name string) error {
	prev, err := r.store.Reset(name)
	if err != nil {
		return err
	}
	p, _ := r.store.Get(name)
	r.push(name, p.FormattedValue(), nil)

	r.broker.Publish(events.Event{
		Type:    events.ParameterResetEvent,
		Payload: events.ParameterPayload{Name: name, Previous: prev, Value: p.Value},
	})
	return nil
}

// ResetAll restores every parameter's default.
func (r *Registry) ResetAll() error {
	for _, name := range r.store.Names() {
		if err := r.Reset(name); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the store to dest.
func (r *Registry) Save(dest string) error {
	if err := r.store.Save(dest); err != nil {
		r.broker.Publish(events.Event{Type: events.SaveFailedEvent, Payload: events.StorePayload{Path: dest, Err: err}})
		return err
	}
	r.broker.Publish(events.Event{Type: events.ParametersSavedEvent, Payload: events.StorePayload{Path: dest}})
	return nil
}

// Import reads values from another parameters file and updates the widgets
// of every parameter that changed.
func (r *Registry) Import(path string) error {
	changed, err := r.store.ImportFile(path)
	if err != nil {
		return err
	}
	for _, name := range changed {
		if p, err := r.store.Get(name); err == nil {
			r.push(name, p.FormattedValue(), nil)
		}
	}
	r.broker.Publish(events.Event{Type: events.ParametersImportedEvent, Payload: events.StorePayload{Path: path, Changed: changed}})
	return nil
}

// TeardownScreen destroys a screen's widgets and forgets its bindings.
func (r *Registry) TeardownScreen(id string) error {
	sc, ok := r.screens.Get(id)
	if !ok {
		return &UnknownScreenError{Screen: id}
	}

	var all []*boundWidget
	sc.walk(func(_, b *boundWidget) { all = append(all, b) })
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].handle != 0 {
			r.toolkit.Destroy(all[i].handle)
			all[i].handle = 0
		}
		all[i].state = Unbound
	}
	r.screens.Delete(id)

	r.logger.Debug("screen torn down", "screen", id)
	r.broker.Publish(events.Event{Type: events.ScreenTornDownEvent, Payload: events.ScreenPayload{Screen: id}})
	return nil
}

// Screens returns the registered screen ids in registration order.
func (r *Registry) Screens() []string {
	return r.screens.Keys()
}

// Parameters returns the parameters bound on a screen, in declaration order.
func (r *Registry) Parameters(screenID string) []string {
	sc, ok := r.screens.Get(screenID)
	if !ok {
		return nil
	}
	var names []string
	sc.walk(func(_, b *boundWidget) {
		if !b.isContainer() {
			names = append(names, b.parameter)
		}
	})
	return names
}

// State returns the lifecycle state of a binding.
func (r *Registry) State(screenID, name string) BindingState {
	sc, ok := r.screens.Get(screenID)
	if !ok {
		return Unbound
	}
	if b, ok := sc.byName[name]; ok {
		return b.state
	}
	return Unbound
}

// Handle returns the widget handle of a binding, or zero.
func (r *Registry) Handle(screenID, name string) Handle {
	sc, ok := r.screens.Get(screenID)
	if !ok {
		return 0
	}
	if b, ok := sc.byName[name]; ok {
		return b.handle
	}
	return 0
}
