package params

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const speedDoc = `{"speed": {"value": 5, "type": "integer", "default": 3}}`

const sampleDoc = `{
  "fake_data": {
    "value": "true",
    "section": "Acquisition",
    "label": "Fake Data Sessions",
    "help": "If true, fake data server used",
    "type": "bool",
    "default": false
  },
  "acq_mode": {
    "value": "EEG",
    "type": "choice",
    "default": "EEG",
    "choices": ["EEG", "EEG/DSI-24", "EEG/LSL"],
    "x-widget-hint": {"width": 30, "tags": ["a", "b"]}
  },
  "time_flash": {
    "value": 0.25,
    "type": "float",
    "default": 0.25,
    "range": [0.05, null],
    "suggested": [0.2, 0.25, 0.3]
  },
  "stim_number": {
    "value": 100,
    "type": "int",
    "default": 100,
    "range": [1, 500],
    "suggested": 100,
    "editable": false
  },
  "data_save_loc": {
    "value": "data/",
    "type": "directorypath",
    "default": "data/"
  },
  "task_text": {
    "value": "HELLO_WORLD",
    "type": "str",
    "default": "HELLO_WORLD",
    "note": "free text"
  }
}`

func mustLoad(t *testing.T, doc string, opts ...Option) *Store {
	t.Helper()
	s, err := Load(strings.NewReader(doc), opts...)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return s
}

func TestStore_SpeedScenario(t *testing.T) {
	s := mustLoad(t, speedDoc)

	p, err := s.Get("speed")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.Value != int64(5) {
		t.Fatalf("speed = %v, want 5", p.Value)
	}

	_, err = s.Set("speed", "fast")
	var invalid *InvalidValueError
	if !errors.As(err, &invalid) {
		t.Fatalf("Set(speed, fast) error = %v, want InvalidValueError", err)
	}
	if v, _ := s.Int("speed"); v != 5 {
		t.Errorf("speed after rejected set = %d, want 5", v)
	}

	if _, err := s.Reset("speed"); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if v, _ := s.Int("speed"); v != 3 {
		t.Errorf("speed after reset = %d, want 3", v)
	}
}

func TestStore_Set(t *testing.T) {
	tests := []struct {
		name      string
		param     string
		value     any
		wantErr   bool
		wantValue any
	}{
		{name: "int_in_range", param: "stim_number", value: 250, wantValue: int64(250)},
		{name: "int_below_range", param: "stim_number", value: 0, wantErr: true, wantValue: int64(100)},
		{name: "int_from_float_rejected", param: "stim_number", value: 2.0, wantErr: true, wantValue: int64(100)},
		{name: "float_widened_from_int", param: "time_flash", value: 1, wantValue: float64(1)},
		{name: "float_below_open_range", param: "time_flash", value: 0.01, wantErr: true, wantValue: 0.25},
		{name: "choice_allowed", param: "acq_mode", value: "EEG/LSL", wantValue: "EEG/LSL"},
		{name: "choice_not_listed", param: "acq_mode", value: "MEG", wantErr: true, wantValue: "EEG"},
		{name: "bool_from_string_rejected", param: "fake_data", value: "false", wantErr: true, wantValue: true},
		{name: "bool", param: "fake_data", value: false, wantValue: false},
		{name: "string_from_int_rejected", param: "task_text", value: 7, wantErr: true, wantValue: "HELLO_WORLD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustLoad(t, sampleDoc)
			before, _ := s.Get(tt.param)

			prev, err := s.Set(tt.param, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && prev != before.Value {
				t.Errorf("Set() prev = %v, want %v", prev, before.Value)
			}
			after, _ := s.Get(tt.param)
			if after.Value != tt.wantValue {
				t.Errorf("value = %#v, want %#v", after.Value, tt.wantValue)
			}
			if s.Dirty() != (after.Value != before.Value) {
				t.Errorf("Dirty() = %v after value %v -> %v", s.Dirty(), before.Value, after.Value)
			}
		})
	}
}

func TestStore_ResetReturnsDefault(t *testing.T) {
	s := mustLoad(t, sampleDoc)
	for _, name := range s.Names() {
		if _, err := s.Reset(name); err != nil {
			t.Fatalf("Reset(%s) error = %v", name, err)
		}
		p, _ := s.Get(name)
		if p.Value != p.Default {
			t.Errorf("%s: value %v after reset, want default %v", name, p.Value, p.Default)
		}
	}

	_, err := s.Reset("missing")
	var unknown *UnknownParameterError
	if !errors.As(err, &unknown) {
		t.Errorf("Reset(missing) error = %v, want UnknownParameterError", err)
	}
}

func TestStore_GetUnknown(t *testing.T) {
	s := mustLoad(t, speedDoc)
	_, err := s.Get("nope")
	var unknown *UnknownParameterError
	if !errors.As(err, &unknown) || unknown.Name != "nope" {
		t.Errorf("Get(nope) error = %v, want UnknownParameterError", err)
	}
}

func TestStore_LoadDecodesDeclarations(t *testing.T) {
	s := mustLoad(t, sampleDoc)

	if diff := cmp.Diff([]string{"fake_data", "acq_mode", "time_flash", "stim_number", "data_save_loc", "task_text"}, s.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	fake, _ := s.Get("fake_data")
	if fake.Type != Boolean || fake.Value != true || fake.Default != false {
		t.Errorf("fake_data = %+v", fake)
	}
	if fake.Section != "Acquisition" || fake.DisplayLabel() != "Fake Data Sessions" {
		t.Errorf("fake_data metadata = %q %q", fake.Section, fake.DisplayLabel())
	}

	flash, _ := s.Get("time_flash")
	if flash.Range == nil || flash.Range.Min == nil || *flash.Range.Min != 0.05 || flash.Range.Max != nil {
		t.Errorf("time_flash range = %v", flash.Range)
	}
	if diff := cmp.Diff([]string{"0.2", "0.25", "0.3"}, flash.SuggestionStrings()); diff != "" {
		t.Errorf("time_flash suggestions mismatch (-want +got):\n%s", diff)
	}

	stim, _ := s.Get("stim_number")
	if stim.Editable {
		t.Error("stim_number should not be editable")
	}

	mode, _ := s.Get("acq_mode")
	if raw, ok := mode.Extra("x-widget-hint"); !ok || raw != `{"width":30,"tags":["a","b"]}` {
		t.Errorf("acq_mode extra = %q, %v", raw, ok)
	}
}

func TestStore_SerializeRoundTrip(t *testing.T) {
	s := mustLoad(t, sampleDoc)
	if _, err := s.Set("time_flash", 0.4); err != nil {
		t.Fatal(err)
	}

	out, err := s.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	reloaded := mustLoad(t, string(out))

	if diff := cmp.Diff(s.All(), reloaded.All(), cmp.AllowUnexported(Parameter{})); diff != "" {
		t.Errorf("reloaded mapping mismatch (-want +got):\n%s", diff)
	}

	again, err := reloaded.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(out), string(again)); diff != "" {
		t.Errorf("second serialization differs (-first +second):\n%s", diff)
	}
}

func TestStore_SerializeKeepsOrderAndExtras(t *testing.T) {
	s := mustLoad(t, sampleDoc)
	out, err := s.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	doc := string(out)

	order := []string{`"fake_data"`, `"acq_mode"`, `"time_flash"`, `"stim_number"`, `"data_save_loc"`, `"task_text"`}
	last := -1
	for _, key := range order {
		i := strings.Index(doc, key)
		if i <= last {
			t.Fatalf("%s out of order in:\n%s", key, doc)
		}
		last = i
	}

	for _, want := range []string{`"x-widget-hint"`, `"note": "free text"`, `"type": "boolean"`, `"type": "integer"`, `"suggested": 100`} {
		if !strings.Contains(doc, want) {
			t.Errorf("serialized document missing %s:\n%s", want, doc)
		}
	}

	// member order inside a declaration follows the source document
	fake := doc[strings.Index(doc, `"fake_data"`):strings.Index(doc, `"acq_mode"`)]
	if strings.Index(fake, `"section"`) > strings.Index(fake, `"type"`) {
		t.Errorf("fake_data members reordered:\n%s", fake)
	}
}

func TestStore_LoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not_json", doc: `{"speed": `},
		{name: "array_top_level", doc: `[1, 2]`},
		{name: "scalar_parameter", doc: `{"speed": 5}`},
		{name: "missing_value", doc: `{"speed": {"type": "integer", "default": 3}}`},
		{name: "missing_type", doc: `{"speed": {"value": 5, "default": 3}}`},
		{name: "missing_default", doc: `{"speed": {"value": 5, "type": "integer"}}`},
		{name: "type_not_string", doc: `{"speed": {"value": 5, "type": 1, "default": 3}}`},
		{name: "duplicate_name", doc: `{"speed": {"value": 5, "type": "integer", "default": 3}, "speed": {"value": 5, "type": "integer", "default": 3}}`},
		{name: "duplicate_member", doc: `{"speed": {"value": 5, "value": 6, "type": "integer", "default": 3}}`},
		{name: "empty_name", doc: `{"": {"value": 5, "type": "integer", "default": 3}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(strings.NewReader(tt.doc))
			var malformed *MalformedSchemaError
			if !errors.As(err, &malformed) {
				t.Fatalf("Load() error = %v, want MalformedSchemaError", err)
			}
			if s.Len() != 0 {
				t.Errorf("store holds %d parameters after failed load", s.Len())
			}
		})
	}
}

func TestStore_LoadInvalidParameter(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantField string
	}{
		{name: "value_wrong_type", doc: `{"speed": {"value": "fast", "type": "integer", "default": 3}}`, wantField: "value"},
		{name: "value_not_whole", doc: `{"speed": {"value": 5.5, "type": "integer", "default": 3}}`, wantField: "value"},
		{name: "value_out_of_range", doc: `{"speed": {"value": 50, "type": "integer", "default": 3, "range": [1, 10]}}`, wantField: "value"},
		{name: "default_out_of_range", doc: `{"speed": {"value": 5, "type": "integer", "default": 30, "range": [1, 10]}}`, wantField: "default"},
		{name: "unknown_type", doc: `{"speed": {"value": 5, "type": "complex", "default": 3}}`, wantField: "type"},
		{name: "choice_without_choices", doc: `{"mode": {"value": "a", "type": "choice", "default": "a"}}`, wantField: "choices"},
		{name: "choices_on_integer", doc: `{"speed": {"value": 5, "type": "integer", "default": 3, "choices": ["5"]}}`, wantField: "choices"},
		{name: "range_on_string", doc: `{"name": {"value": "x", "type": "string", "default": "x", "range": [1, 2]}}`, wantField: "range"},
		{name: "range_inverted", doc: `{"speed": {"value": 5, "type": "integer", "default": 3, "range": [10, 1]}}`, wantField: "range"},
		{name: "label_not_string", doc: `{"speed": {"value": 5, "type": "integer", "default": 3, "label": 4}}`, wantField: "label"},
		{name: "suggested_wrong_type", doc: `{"speed": {"value": 5, "type": "integer", "default": 3, "suggested": ["x"]}}`, wantField: "suggested"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(strings.NewReader(`{"ok": {"value": 1, "type": "integer", "default": 1}, ` + strings.TrimPrefix(tt.doc, "{")))
			var invalid *InvalidParameterError
			if !errors.As(err, &invalid) {
				t.Fatalf("Load() error = %v, want InvalidParameterError", err)
			}
			if invalid.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", invalid.Field, tt.wantField)
			}
			if s.Len() != 0 {
				t.Errorf("store holds %d parameters after failed load", s.Len())
			}
		})
	}
}

func TestStore_LoadWithDefaultFallback(t *testing.T) {
	doc := `{"speed": {"value": 50, "type": "integer", "default": 3, "range": [1, 10]}}`
	s := mustLoad(t, doc, WithDefaultFallback())
	if v, _ := s.Int("speed"); v != 3 {
		t.Errorf("speed = %d, want default 3", v)
	}

	_, err := Load(strings.NewReader(`{"speed": {"value": 5, "type": "integer", "default": 30, "range": [1, 10]}}`), WithDefaultFallback())
	var invalid *InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Errorf("invalid default with fallback: error = %v, want InvalidParameterError", err)
	}
}

func TestStore_FailedReloadEmptiesStore(t *testing.T) {
	s := mustLoad(t, speedDoc)
	if err := s.Load(strings.NewReader(`{"speed": 5}`)); err == nil {
		t.Fatal("Load() of malformed document succeeded")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestStore_Import(t *testing.T) {
	t.Run("applies_shared_values", func(t *testing.T) {
		s := mustLoad(t, sampleDoc)
		changed, err := s.Import(strings.NewReader(`{
			"time_flash": {"value": 0.5, "type": "float", "default": 0.1},
			"stim_number": {"value": 100, "type": "integer", "default": 1},
			"unrelated": {"value": 1, "type": "integer", "default": 1}
		}`))
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		if diff := cmp.Diff([]string{"time_flash"}, changed); diff != "" {
			t.Errorf("changed mismatch (-want +got):\n%s", diff)
		}
		if v, _ := s.Float("time_flash"); v != 0.5 {
			t.Errorf("time_flash = %g, want 0.5", v)
		}
		if p, _ := s.Get("time_flash"); p.Default != 0.25 {
			t.Errorf("import changed default to %v", p.Default)
		}
		if s.Has("unrelated") {
			t.Error("import declared a new parameter")
		}
		if !s.Dirty() {
			t.Error("store not dirty after import")
		}
	})

	t.Run("all_or_nothing", func(t *testing.T) {
		s := mustLoad(t, sampleDoc)
		_, err := s.Import(strings.NewReader(`{
			"time_flash": {"value": 0.5, "type": "float", "default": 0.1},
			"stim_number": {"value": 9000, "type": "integer", "default": 1}
		}`))
		var invalid *InvalidValueError
		if !errors.As(err, &invalid) || invalid.Name != "stim_number" {
			t.Fatalf("Import() error = %v, want InvalidValueError for stim_number", err)
		}
		if v, _ := s.Float("time_flash"); v != 0.25 {
			t.Errorf("time_flash = %g, want untouched 0.25", v)
		}
	})
}

func TestStore_TypedAccessors(t *testing.T) {
	s := mustLoad(t, sampleDoc)

	if b, err := s.Bool("fake_data"); err != nil || !b {
		t.Errorf("Bool(fake_data) = %v, %v", b, err)
	}
	if f, err := s.Float("time_flash"); err != nil || f != 0.25 {
		t.Errorf("Float(time_flash) = %v, %v", f, err)
	}
	if txt, err := s.Text("acq_mode"); err != nil || txt != "EEG" {
		t.Errorf("Text(acq_mode) = %v, %v", txt, err)
	}
	if _, err := s.Int("time_flash"); err == nil {
		t.Error("Int(time_flash) should fail for a float parameter")
	}
}

func TestStore_SaveAndReload(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "parameters.json")
	s := mustLoad(t, sampleDoc)
	if _, err := s.Set("stim_number", 42); err != nil {
		t.Fatal(err)
	}

	if err := s.Save(dest); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if s.Dirty() {
		t.Error("store still dirty after save")
	}

	reloaded, err := LoadFile(dest)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if v, _ := reloaded.Int("stim_number"); v != 42 {
		t.Errorf("stim_number = %d, want 42", v)
	}

	entries, _ := os.ReadDir(filepath.Dir(dest))
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the saved file", len(entries))
	}
}

// failingFile writes part of the data then fails, like a disk that fills up.
type failingFile struct {
	*os.File
}

func (f failingFile) Write(p []byte) (int, error) {
	n, _ := f.File.Write(p[:len(p)/2])
	return n, errors.New("no space left on device")
}

func TestStore_SaveFailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "parameters.json")

	s := mustLoad(t, speedDoc)
	if err := s.Save(dest); err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(dest)

	orig := createTemp
	t.Cleanup(func() { createTemp = orig })
	createTemp = func(dir, pattern string) (tempFile, error) {
		f, err := os.CreateTemp(dir, pattern)
		if err != nil {
			return nil, err
		}
		return failingFile{f}, nil
	}

	if _, err := s.Set("speed", 9); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(dest); err == nil {
		t.Fatal("Save() succeeded with a failing disk")
	}

	after, _ := os.ReadFile(dest)
	if diff := cmp.Diff(string(before), string(after)); diff != "" {
		t.Errorf("previous file changed (-before +after):\n%s", diff)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temporary file left behind: %d entries", len(entries))
	}
	if !s.Dirty() {
		t.Error("failed save cleared the dirty flag")
	}
}

// editingFile runs edit before writing, like a user change that lands
// while a save is in flight.
type editingFile struct {
	*os.File
	edit func()
}

func (f editingFile) Write(p []byte) (int, error) {
	f.edit()
	return f.File.Write(p)
}

func TestStore_EditDuringSaveStaysDirty(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "parameters.json")
	s := mustLoad(t, speedDoc)
	if _, err := s.Set("speed", 7); err != nil {
		t.Fatal(err)
	}

	orig := createTemp
	t.Cleanup(func() { createTemp = orig })
	createTemp = func(dir, pattern string) (tempFile, error) {
		f, err := os.CreateTemp(dir, pattern)
		if err != nil {
			return nil, err
		}
		return editingFile{File: f, edit: func() {
			if _, err := s.Set("speed", 9); err != nil {
				t.Error(err)
			}
		}}, nil
	}

	if err := s.Save(dest); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !s.Dirty() {
		t.Error("edit made during save was reported as saved")
	}
	saved, err := LoadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := saved.Int("speed"); v != 7 {
		t.Errorf("saved speed = %d, want 7", v)
	}

	createTemp = orig
	if err := s.Save(dest); err != nil {
		t.Fatal(err)
	}
	if s.Dirty() {
		t.Error("store dirty after a quiet save")
	}
	saved, err = LoadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := saved.Int("speed"); v != 9 {
		t.Errorf("saved speed = %d, want 9", v)
	}
}

func TestStore_SaveInProgress(t *testing.T) {
	s := mustLoad(t, speedDoc)
	s.saving.Lock()
	defer s.saving.Unlock()

	if err := s.Save(filepath.Join(t.TempDir(), "p.json")); !errors.Is(err, ErrSaveInProgress) {
		t.Errorf("Save() error = %v, want ErrSaveInProgress", err)
	}
}

func TestStore_SaveToDirectoryFails(t *testing.T) {
	s := mustLoad(t, speedDoc)
	if err := s.Save(t.TempDir()); err == nil {
		t.Error("Save() onto a directory succeeded")
	}
}
