package heroscene

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher re-reads a config file whenever it is written or replaced
// and publishes the configs that validate.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan Config
	log     Logger

	done      chan struct{}
	closeOnce sync.Once
}

// WatchConfig starts watching path until ctx is cancelled or Close is
// called. The parent directory is watched so that editors which replace
// the file on save are noticed too.
func WatchConfig(ctx context.Context, path string, log Logger) (*ConfigWatcher, error) {
	if log == nil {
		log = NewNopLogger()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch config: %w", err)
	}

	cw := &ConfigWatcher{
		path:    abs,
		watcher: w,
		updates: make(chan Config, 1),
		log:     log,
		done:    make(chan struct{}),
	}
	go cw.run(ctx)
	return cw, nil
}

// Updates yields each successfully reloaded config. It is closed when the
// watcher stops.
func (cw *ConfigWatcher) Updates() <-chan Config {
	return cw.updates
}

func (cw *ConfigWatcher) Close() error {
	cw.closeOnce.Do(func() { close(cw.done) })
	return nil
}

func (cw *ConfigWatcher) run(ctx context.Context) {
	defer close(cw.updates)
	defer cw.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.done:
			return

		case e, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != cw.path {
				continue
			}
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				continue
			}
			cfg, err := LoadConfig(cw.path)
			if err != nil {
				cw.log.Warnf("config reload skipped: %v", err)
				continue
			}
			cw.log.Infof("config reloaded from %s", cw.path)
			// Only the newest config matters; drop one that was never read.
			select {
			case <-cw.updates:
			default:
			}
			select {
			case cw.updates <- cfg:
			case <-ctx.Done():
				return
			case <-cw.done:
				return
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log.Errorf("config watcher: %v", err)
		}
	}
}
