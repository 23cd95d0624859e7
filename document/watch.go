package document

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultWatchDebounce collapses the burst of events an editor produces
// when saving.
const DefaultWatchDebounce = 100 * time.Millisecond

// Watcher reloads a YAML document whenever the file changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	onLoad   func(*Document, error)
	log      *zap.Logger
}

// NewWatcher returns a watcher that calls onLoad with each reloaded
// document, or with the error that prevented loading it.
func NewWatcher(path string, onLoad func(*Document, error), log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{path: path, debounce: DefaultWatchDebounce, onLoad: onLoad, log: log}
}

// Run watches until ctx is cancelled. The parent directory is watched so
// editors that save by rename are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", w.path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w.log.Info("watching document", zap.String("path", abs))

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-timer.C:
			doc, err := Load(abs)
			if err != nil {
				w.log.Warn("reload failed", zap.String("path", abs), zap.Error(err))
			} else {
				w.log.Info("document reloaded", zap.String("path", abs), zap.Int("blocks", doc.Len()))
			}
			w.onLoad(doc, err)
		}
	}
}
