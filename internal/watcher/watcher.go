package watcher

import (
	"context"
	"os"
	"sync"
	"time"
)

// FileWatcher monitors one file with debouncing.
// It collects rapid changes and triggers a single callback after things settle.
type FileWatcher struct {
	path string

	// Configuration
	debounceDelay time.Duration

	// Debouncing state
	timer   *time.Timer
	timerMu sync.Mutex
	last    stamp

	// Callback when changes are ready
	onChange func(path string)

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// stamp is what polling compares between checks.
type stamp struct {
	exists  bool
	modTime time.Time
	size    int64
}

func statFile(path string) stamp {
	info, err := os.Stat(path)
	if err != nil {
		return stamp{}
	}
	return stamp{exists: true, modTime: info.ModTime(), size: info.Size()}
}

// NewWatcher creates a watcher for path with the specified debounce delay.
// The file's current state is the baseline.
func NewWatcher(path string, debounceDelay time.Duration, onChange func(path string)) *FileWatcher {
	ctx, cancel := context.WithCancel(context.Background())

	return &FileWatcher{
		path:          path,
		debounceDelay: debounceDelay,
		last:          statFile(path),
		onChange:      onChange,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Path returns the watched file.
func (w *FileWatcher) Path() string {
	return w.path
}

// Start polls the file every interval until Stop.
func (w *FileWatcher) Start(interval time.Duration) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.Check()
			}
		}
	}()
}

// Check compares the file with the last state seen and schedules the
// callback when it differs. It reports whether a change was seen.
func (w *FileWatcher) Check() bool {
	current := statFile(w.path)

	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if current == w.last {
		return false
	}
	w.last = current
	// A deleted file is not a change to load; wait for it to come back.
	if !current.exists {
		return false
	}
	w.schedule()
	return true
}

// Acknowledge takes the file's current state as the baseline and drops any
// pending callback. Call it after writing the file yourself.
func (w *FileWatcher) Acknowledge() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	w.last = statFile(w.path)
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Stop shuts down the watcher.
func (w *FileWatcher) Stop() {
	w.cancel()
	w.wg.Wait()

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.timerMu.Unlock()
}

// schedule restarts the debounce timer. Callers hold timerMu.
func (w *FileWatcher) schedule() {
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, w.fire)
}

// fire is called after debounce delay.
func (w *FileWatcher) fire() {
	w.timerMu.Lock()
	w.timer = nil
	w.timerMu.Unlock()

	if w.ctx.Err() != nil {
		return
	}
	// Trigger callback (outside lock)
	if w.onChange != nil {
		w.onChange(w.path)
	}
}
