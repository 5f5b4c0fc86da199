package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T) (*FileWatcher, string, chan string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parameters.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	changes := make(chan string, 4)
	w := NewWatcher(path, 10*time.Millisecond, func(p string) { changes <- p })
	t.Cleanup(w.Stop)
	return w, path, changes
}

func waitChange(t *testing.T, changes <-chan string) string {
	t.Helper()
	select {
	case p := <-changes:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
		return ""
	}
}

func assertQuiet(t *testing.T, changes <-chan string) {
	t.Helper()
	select {
	case p := <-changes:
		t.Fatalf("unexpected change reported for %s", p)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFileWatcher_Check(t *testing.T) {
	w, path, changes := newTestWatcher(t)

	if w.Check() {
		t.Error("Check() reported a change on an untouched file")
	}

	if err := os.WriteFile(path, []byte(`{"speed": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if !w.Check() {
		t.Fatal("Check() missed a write")
	}
	if got := waitChange(t, changes); got != path {
		t.Errorf("changed path = %q, want %q", got, path)
	}
	if w.Check() {
		t.Error("Check() reported the same write twice")
	}
}

func TestFileWatcher_Debounces(t *testing.T) {
	w, path, changes := newTestWatcher(t)

	for _, content := range []string{`{"a": 1}`, `{"a": 12}`, `{"a": 123}`} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		w.Check()
	}
	waitChange(t, changes)
	assertQuiet(t, changes)
}

func TestFileWatcher_Acknowledge(t *testing.T) {
	w, path, changes := newTestWatcher(t)

	if err := os.WriteFile(path, []byte(`{"saved": true}`), 0o644); err != nil {
		t.Fatal(err)
	}
	w.Acknowledge()
	if w.Check() {
		t.Error("Check() reported an acknowledged write")
	}
	assertQuiet(t, changes)
}

func TestFileWatcher_RemovedFile(t *testing.T) {
	w, path, changes := newTestWatcher(t)

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if w.Check() {
		t.Error("Check() reported a removed file as a change")
	}
	assertQuiet(t, changes)

	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if !w.Check() {
		t.Error("Check() missed the file coming back")
	}
	waitChange(t, changes)
}

func TestFileWatcher_StartStop(t *testing.T) {
	w, path, changes := newTestWatcher(t)
	w.Start(5 * time.Millisecond)

	if err := os.WriteFile(path, []byte(`{"polled": true}`), 0o644); err != nil {
		t.Fatal(err)
	}
	waitChange(t, changes)

	w.Stop()
	if err := os.WriteFile(path, []byte(`{"after": "stop"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	assertQuiet(t, changes)
}
