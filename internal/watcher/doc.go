// Package watcher notices when the parameters file is changed by another
// program.
//
// # Overview
//
// The file is polled for a new modification time or size. Rapid changes,
// such as an editor writing a temporary file and renaming it, are debounced
// into a single callback once the file has been quiet for the debounce
// delay.
//
// # Own writes
//
// A program that saves the watched file itself calls Acknowledge afterwards
// so its own write is taken as the new baseline instead of a change.
//
// # Usage
//
//	w := watcher.NewWatcher(path, 500*time.Millisecond, func(path string) {
//	    changes <- path
//	})
//	w.Start(2 * time.Second)
//	defer w.Stop()
package watcher
