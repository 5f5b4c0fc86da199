package params

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/billie-coop/rsvp/internal/csync"
)

// Store owns the ordered mapping of parameter name to Parameter.
// It is safe for concurrent use; the binder is its only writer.
type Store struct {
	params *csync.OrderedMap[string, Parameter]

	// loadMu serializes Load and Import so each replaces state in one step.
	loadMu sync.Mutex
	// saving is held for the duration of a Save.
	saving sync.Mutex
	// gen counts value changes; saved is the gen last written or loaded.
	// The store is dirty while they differ.
	gen   atomic.Uint64
	saved atomic.Uint64

	fallback bool
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load, save and repair messages.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithDefaultFallback makes Load replace a declared value that violates its
// type or range with the parameter's default instead of failing.
// Invalid defaults still fail the load.
func WithDefaultFallback() Option {
	return func(s *Store) {
		s.fallback = true
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		params: csync.NewOrderedMap[string, Parameter](),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load creates a store from a parameters document. On error the returned
// store is empty and usable.
func Load(r io.Reader, opts ...Option) (*Store, error) {
	s := New(opts...)
	return s, s.Load(r)
}

// LoadFile creates a store from the document at path.
func LoadFile(path string, opts ...Option) (*Store, error) {
	s := New(opts...)
	return s, s.LoadFile(path)
}

// Load replaces the store's contents with the parameters in r.
// If the document is malformed or declares an invalid parameter the store
// is left empty and the error is returned.
func (s *Store) Load(r io.Reader) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	data, err := io.ReadAll(r)
	if err != nil {
		s.params.Clear()
		return fmt.Errorf("failed to read parameters: %w", err)
	}

	loaded, err := decodeDocument(data, decodeOptions{fallback: s.fallback, logger: s.logger})
	if err != nil {
		s.params.Clear()
		return err
	}
	s.params.ReplaceWith(loaded)
	s.markSaved(s.gen.Load())
	s.logger.Info("parameters loaded", "count", loaded.Len())
	return nil
}

// LoadFile replaces the store's contents with the document at path.
func (s *Store) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		s.params.Clear()
		return fmt.Errorf("failed to open parameters file: %w", err)
	}
	defer f.Close()

	if err := s.Load(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Get returns a copy of the named parameter.
func (s *Store) Get(name string) (Parameter, error) {
	p, ok := s.params.Get(name)
	if !ok {
		return Parameter{}, &UnknownParameterError{Name: name}
	}
	return p, nil
}

// Has reports whether the store declares name.
func (s *Store) Has(name string) bool {
	return s.params.Has(name)
}

// Set validates v and makes it the parameter's value, returning the
// previous value. A rejected value leaves the parameter unchanged.
func (s *Store) Set(name string, v any) (prev any, err error) {
	var changed bool
	found, err := s.params.Update(name, func(p Parameter) (Parameter, error) {
		next, err := p.Check(v)
		if err != nil {
			return p, &InvalidValueError{Name: name, Value: v, Err: err}
		}
		prev, changed = p.Value, p.Value != next
		p.Value = next
		return p, nil
	})
	if !found {
		return nil, &UnknownParameterError{Name: name}
	}
	if err != nil {
		return nil, err
	}
	if changed {
		s.gen.Add(1)
	}
	return prev, nil
}

// Reset restores the parameter's default value, returning the previous one.
func (s *Store) Reset(name string) (prev any, err error) {
	var changed bool
	found, _ := s.params.Update(name, func(p Parameter) (Parameter, error) {
		prev, changed = p.Value, p.Value != p.Default
		p.Value = p.Default
		return p, nil
	})
	if !found {
		return nil, &UnknownParameterError{Name: name}
	}
	if changed {
		s.gen.Add(1)
	}
	return prev, nil
}

// Names returns the parameter names in document order.
func (s *Store) Names() []string {
	return s.params.Keys()
}

// All returns copies of every parameter in document order.
func (s *Store) All() []Parameter {
	return s.params.Values()
}

// Len returns the number of parameters.
func (s *Store) Len() int {
	return s.params.Len()
}

// Dirty reports whether any value changed since the last load or save.
func (s *Store) Dirty() bool {
	return s.gen.Load() != s.saved.Load()
}

// markSaved records that the values as of generation g are on disk.
// saved only moves forward.
func (s *Store) markSaved(g uint64) {
	for {
		cur := s.saved.Load()
		if cur >= g || s.saved.CompareAndSwap(cur, g) {
			return
		}
	}
}

// Serialize renders the store as a JSON document in insertion order.
// Members the store does not interpret are written back unchanged.
func (s *Store) Serialize() ([]byte, error) {
	return encodeDocument(s.params.Values())
}

// Import copies values from another parameters document into the store for
// every name the two share. Every value is checked against this store's
// declarations before any is applied, so a rejected value changes nothing.
// It returns the names whose value changed, in store order.
func (s *Store) Import(r io.Reader) ([]string, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters: %w", err)
	}
	incoming, err := decodeDocument(data, decodeOptions{logger: s.logger})
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	var changed []string
	for _, p := range s.params.Values() {
		in, ok := incoming.Get(p.Name)
		if !ok {
			continue
		}
		v, err := p.Check(in.Value)
		if err != nil {
			return nil, &InvalidValueError{Name: p.Name, Value: in.Value, Err: err}
		}
		if v != p.Value {
			updates[p.Name] = v
			changed = append(changed, p.Name)
		}
	}
	for _, name := range incoming.Keys() {
		if !s.params.Has(name) {
			s.logger.Debug("imported parameter not declared, skipping", "parameter", name)
		}
	}

	for _, name := range changed {
		s.params.Update(name, func(p Parameter) (Parameter, error) {
			p.Value = updates[name]
			return p, nil
		})
	}
	if len(changed) > 0 {
		s.gen.Add(1)
	}
	s.logger.Info("parameters imported", "changed", len(changed))
	return changed, nil
}

// ImportFile imports values from the document at path.
func (s *Store) ImportFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters file: %w", err)
	}
	changed, err := s.Import(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return changed, nil
}

// Save writes the store to dest. The document is written to a temporary
// file next to dest which then replaces it, so a failed save leaves any
// existing file intact. Overlapping saves fail with ErrSaveInProgress.
func (s *Store) Save(dest string) error {
	if !s.saving.TryLock() {
		return ErrSaveInProgress
	}
	defer s.saving.Unlock()

	// Changes made after this point keep the store dirty.
	gen := s.gen.Load()
	data, err := s.Serialize()
	if err != nil {
		return err
	}
	if err := writeFileAtomic(dest, data, 0o644); err != nil {
		s.logger.Error("failed to save parameters", "path", dest, "error", err)
		return fmt.Errorf("failed to save parameters: %w", err)
	}
	s.markSaved(gen)
	s.logger.Info("parameters saved", "path", dest, "count", s.Len())
	return nil
}
