package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the config file into tunables whenever it changes, until the
// context is cancelled.  A file that fails to load or validate is logged and
// ignored so the last good configuration stays in effect.
func Watch(ctx context.Context, path string, tunables *Tunables,
	log *zap.SugaredLogger) error {

	if log == nil {
		log = zap.NewNop().Sugar()
	}

	watcher, err := fsnotify.NewWatcher()

	if err != nil {
		return fmt.Errorf("error creating config watcher: %w", err)
	}

	defer watcher.Close()

	// editors often replace the file rather than write it, so watch the
	// directory and filter on the file name
	abs, err := filepath.Abs(path)

	if err != nil {
		return fmt.Errorf("error resolving config path: %w", err)
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("error watching config directory: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != abs {
				continue
			}

			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}

			cfg, err := LoadConfig(abs)

			if err != nil {
				log.Warnw("Ignoring config change", "path", abs, "error", err)
				continue
			}

			tunables.Replace(cfg)
			log.Infow("Reloaded config", "path", abs, "version", tunables.Version())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("Config watcher error", "error", err)
		}
	}
}
