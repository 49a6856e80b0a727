package worksheet

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType represents the type of worksheet event.
type EventType int

const (
	// Changed indicates the worksheet was written and re-evaluated.
	Changed EventType = iota
	// Removed indicates the worksheet file was deleted or renamed away.
	Removed
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is emitted when the watched worksheet changes.
type Event struct {
	Type     EventType
	Snapshot *Snapshot // nil for Removed events
}

// Watcher monitors a single worksheet file and emits evaluated snapshots.
// Rapid successive writes are debounced so editors that write in multiple
// steps produce a single event.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	events  chan Event

	debounceDelay time.Duration
	debounceTimer *time.Timer
	timerMu       sync.Mutex

	stopCh    chan struct{}
	stoppedCh chan struct{}
	running   bool
	runningMu sync.Mutex
}

// NewWatcher creates a watcher for the given worksheet path.
func NewWatcher(path string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	return &Watcher{
		path:          path,
		events:        make(chan Event, 16),
		debounceDelay: debounce,
		stopCh:        make(chan struct{}),
		stoppedCh:     make(chan struct{}),
	}
}

// Start begins watching the worksheet and emits an initial snapshot.
// Starting an already-started watcher is a no-op.
func (w *Watcher) Start() error {
	w.runningMu.Lock()
	defer w.runningMu.Unlock()

	if w.running {
		return nil
	}

	// Emit the current state up front so consumers don't wait for an edit.
	snap, err := Load(w.path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	// Watch the directory, not the file: editors replace files on save and
	// a direct file watch would be lost on the first rename.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	w.events <- Event{Type: Changed, Snapshot: snap}

	w.running = true
	go w.watchLoop()

	return nil
}

// Stop terminates the watcher and closes the events channel.
func (w *Watcher) Stop() {
	w.runningMu.Lock()
	if !w.running {
		w.runningMu.Unlock()
		return
	}
	w.running = false
	w.runningMu.Unlock()

	close(w.stopCh)
	<-w.stoppedCh

	if w.watcher != nil {
		w.watcher.Close()
	}

	w.timerMu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.timerMu.Unlock()

	close(w.events)
}

// Events returns the channel for receiving worksheet events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// watchLoop is the main event loop that processes fsnotify events.
func (w *Watcher) watchLoop() {
	defer close(w.stoppedCh)

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFsEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Non-fatal; keep watching.
			_ = err
		}
	}
}

// handleFsEvent processes a single fsnotify event for the watched file.
func (w *Watcher) handleFsEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != filepath.Base(w.path) {
		return
	}

	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		w.debounce(func() { w.emitRemoved() })
		return
	}

	if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
		w.debounce(func() { w.emitSnapshot() })
	}
}

// debounce schedules fn after the debounce delay, replacing any pending run.
func (w *Watcher) debounce(fn func()) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, fn)
}

func (w *Watcher) emitSnapshot() {
	snap, err := Load(w.path)
	if err != nil {
		// File may be mid-replace; the next event will catch up.
		return
	}

	w.send(Event{Type: Changed, Snapshot: snap})
}

func (w *Watcher) emitRemoved() {
	w.send(Event{Type: Removed})
}

// send delivers an event unless the watcher has stopped. A debounce timer
// that has already fired keeps running while Stop closes the events channel,
// so the running flag is checked under the same lock Stop flips it under.
func (w *Watcher) send(event Event) {
	w.runningMu.Lock()
	defer w.runningMu.Unlock()

	if !w.running {
		return
	}

	select {
	case w.events <- event:
	default:
		// Channel full, drop event
	}
}
