package catalog

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a set of catalog files whenever one of them changes on
// disk. Reloads merge the files the way LoadFiles does.
type Watcher struct {
	paths    []string
	watched  map[string]bool
	fsnotify *fsnotify.Watcher
	log      *zap.Logger

	// OnReload receives every successfully reloaded catalog.
	OnReload func(*Catalog)
}

// NewWatcher starts watching the directories holding paths. Editors often
// replace files instead of writing them, so directories are watched and
// events are filtered by name. Empty paths are ignored.
func NewWatcher(log *zap.Logger, paths ...string) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{watched: make(map[string]bool), fsnotify: fsWatch, log: log}
	dirs := make(map[string]bool)
	for _, path := range paths {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			fsWatch.Close()
			return nil, err
		}
		w.paths = append(w.paths, abs)
		w.watched[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fsWatch.Add(dir); err != nil {
			fsWatch.Close()
			return nil, err
		}
		dirs[dir] = true
	}
	return w, nil
}

// Paths returns the absolute paths of the watched catalog files.
func (w *Watcher) Paths() []string {
	return append([]string(nil), w.paths...)
}

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsnotify.Close()
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(e.Name)
			if !w.watched[name] {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			c, err := LoadFiles(w.paths...)
			if err != nil {
				w.log.Warn("catalog reload failed", zap.String("path", name), zap.Error(err))
				continue
			}
			w.log.Info("catalog reloaded", zap.String("path", name))
			if w.OnReload != nil {
				w.OnReload(c)
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return nil
			}
			w.log.Error("catalog watch error", zap.Error(err))

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
