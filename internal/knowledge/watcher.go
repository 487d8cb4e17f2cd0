package knowledge

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Ramsu24/D-Solar-sub001/internal/observability"
)

// Reloader applies a freshly loaded seed.
type Reloader func(ctx context.Context, seed *Seed) error

// Watcher re-applies the seed file whenever it changes on disk.
type Watcher struct {
	path     string
	reload   Reloader
	metrics  *observability.Metrics
	log      *observability.Logger
	debounce time.Duration
}

// NewWatcher creates a watcher for the seed file at path.
func NewWatcher(path string, reload Reloader, metrics *observability.Metrics, log *observability.Logger) *Watcher {
	if log == nil {
		log = observability.NopLogger()
	}
	return &Watcher{
		path:     path,
		reload:   reload,
		metrics:  metrics,
		log:      log,
		debounce: 250 * time.Millisecond,
	}
}

// Reload loads the seed file once and applies it.
func (w *Watcher) Reload(ctx context.Context) error {
	seed, err := LoadSeedFile(w.path)
	if err == nil {
		err = w.reload(ctx, seed)
	}
	if err != nil {
		w.metrics.ObserveReload("error")
		return fmt.Errorf("reload seed: %w", err)
	}

	w.metrics.ObserveReload("success")
	w.log.Info().
		Str("path", w.path).
		Int("faqs", len(seed.FAQs)).
		Int("packages", len(seed.Packages)).
		Msg("Knowledge seed reloaded")
	return nil
}

// Run blocks until ctx is cancelled, reloading after each burst of writes.
// The parent directory is watched so editors that replace the file are seen.
func (w *Watcher) Run(ctx context.Context) error {
	target, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				timer.Reset(w.debounce)
			}
		case <-timer.C:
			if err := w.Reload(ctx); err != nil {
				w.log.Error().Err(err).Str("path", w.path).Msg("Knowledge seed reload failed")
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("Seed watcher error")
		}
	}
}
