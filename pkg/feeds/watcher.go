package feeds

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the registry whenever the file at path changes, calling
// onReload with each successfully parsed replacement. Parse failures are
// logged and the previous registry stays in effect. Watch blocks until ctx
// is done.
//
// The watch is on the containing directory, not the file itself, so
// editor-style replace-by-rename still triggers a reload.
func Watch(ctx context.Context, path string, logger *slog.Logger, onReload func(*Registry)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating feed registry watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			registry, err := Load(path)
			if err != nil {
				logger.Warn("feed registry reload failed, keeping previous registry",
					"path", path,
					"error", err,
				)
				continue
			}

			logger.Info("feed registry reloaded",
				"path", path,
				"feeds", len(registry.Feeds()),
			)
			onReload(registry)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("feed registry watcher error", "error", err)
		}
	}
}
