package watch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watcher runs callbacks when registered files change. It watches the
// parent directory and filters by name, since watched files may be
// replaced wholesale.
type Watcher struct {
	fsw       *fsnotify.Watcher
	callbacks map[string]func()
}

// New creates an idle watcher. Register files with WatchFile, then call
// Run.
func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fs watcher: %w", err)
	}
	return &Watcher{fsw: fsw, callbacks: make(map[string]func())}, nil
}

// WatchFile registers fn to run whenever the file at path changes. The
// containing directory must exist.
func (w *Watcher) WatchFile(path string, fn func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.callbacks[abs] = fn
	return nil
}

// Run dispatches change events until ctx is cancelled. Callbacks swallow
// their own failures and never stop the loop.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	const changeOps = fsnotify.Create | fsnotify.Write | fsnotify.Rename | fsnotify.Remove

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("file watcher shutting down")
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&changeOps == 0 {
				continue
			}
			fn, registered := w.callbacks[filepath.Clean(ev.Name)]
			if !registered {
				continue
			}
			log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("watched file changed")
			fn()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("file watcher error")
		}
	}
}
