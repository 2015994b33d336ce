// Package watch provides OS-native file watching for the taut tools,
// backed by fsnotify, plus a per-path debouncer so that editors that
// write a file several times in quick succession trigger one
// re-verification instead of many.
package watch

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is a bitmask of the file operations a watch event reports.
type Op uint8

// Watch operations.
const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

// Event is one observed change to a watched path.
type Event struct {
	Path string
	Op   Op
}

// Watcher wraps an fsnotify watcher behind channels of package-local
// events.
type Watcher struct {
	w   *fsnotify.Watcher
	evC chan Event
	erC chan error
}

// New creates a watcher and starts its event loop.
func New() (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &Watcher{w: w, evC: make(chan Event, 128), erC: make(chan error, 1)}
	go fw.loop()
	return fw, nil
}

func (fw *Watcher) loop() {
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				close(fw.evC)
				return
			}
			var op Op
			if ev.Op&fsnotify.Create != 0 {
				op |= OpCreate
			}
			if ev.Op&fsnotify.Write != 0 {
				op |= OpWrite
			}
			if ev.Op&fsnotify.Remove != 0 {
				op |= OpRemove
			}
			if ev.Op&fsnotify.Rename != 0 {
				op |= OpRename
			}
			if op != 0 {
				fw.evC <- Event{Path: ev.Name, Op: op}
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			fw.erC <- err
		}
	}
}

// Events returns the channel of observed changes. It is closed when the
// watcher is closed.
func (fw *Watcher) Events() <-chan Event { return fw.evC }

// Errors returns the channel of watch errors.
func (fw *Watcher) Errors() <-chan error { return fw.erC }

// Add starts watching a file or directory.
func (fw *Watcher) Add(name string) error { return fw.w.Add(name) }

// Remove stops watching a file or directory.
func (fw *Watcher) Remove(name string) error { return fw.w.Remove(name) }

// Close shuts the watcher down and closes the event channel.
func (fw *Watcher) Close() error { return fw.w.Close() }

// Debounce forwards events from in, holding each path back until it has
// been quiet for the given window and merging the operations seen in the
// meantime. The returned channel is closed once in is closed and every
// pending event has been flushed.
func Debounce(in <-chan Event, window time.Duration) <-chan Event {
	out := make(chan Event, 128)
	go func() {
		defer close(out)
		pending := make(map[string]Op)
		var timer *time.Timer
		var fire <-chan time.Time

		flush := func() {
			for path, op := range pending {
				out <- Event{Path: path, Op: op}
				delete(pending, path)
			}
			fire = nil
		}

		for {
			select {
			case ev, ok := <-in:
				if !ok {
					flush()
					return
				}
				pending[ev.Path] |= ev.Op
				if timer == nil {
					timer = time.NewTimer(window)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(window)
				}
				fire = timer.C
			case <-fire:
				flush()
			}
		}
	}()
	return out
}
