package persist

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// StyleWatcher reports changes to the style document. It only signals; the
// owner of the style decides when to reload.
type StyleWatcher struct {
	fw     *fsnotify.Watcher
	name   string
	signal chan struct{}
	wake   func()
	done   chan struct{}
	log    *slog.Logger
}

// WatchStyle watches the style file's directory, since editors commonly
// replace files by rename and a watch on the file itself would be lost.
// wake, if set, is called from the watcher goroutine after each signal.
func (s *Store) WatchStyle(wake func()) (*StyleWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(s.dir); err != nil {
		_ = fw.Close()
		return nil, err
	}
	w := &StyleWatcher{
		fw:     fw,
		name:   StyleFileName,
		signal: make(chan struct{}, 1),
		wake:   wake,
		done:   make(chan struct{}),
		log:    s.log,
	}
	go w.run()
	return w, nil
}

func (w *StyleWatcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != w.name || ev.Op == fsnotify.Chmod {
				continue
			}
			w.log.Debug("style file changed", "op", ev.Op.String())
			select {
			case w.signal <- struct{}{}:
			default: // a signal is already pending
			}
			if w.wake != nil {
				w.wake()
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("style watcher", "err", err)
		}
	}
}

// Poll reports whether the style changed since the last Poll. It never
// blocks, and any number of changes collapse into one true.
func (w *StyleWatcher) Poll() bool {
	changed := false
	for {
		select {
		case <-w.signal:
			changed = true
		default:
			return changed
		}
	}
}

// Close stops watching and waits for the watcher goroutine to exit.
func (w *StyleWatcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}

// Pending reports whether a signal is waiting, without consuming it.
func (w *StyleWatcher) Pending() bool { return len(w.signal) > 0 }
