package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange whenever the file at path is written, created,
// renamed over or removed. It watches the parent directory so atomic
// replacements by editors (and by FileStore itself) are seen. Watch blocks
// until ctx is cancelled.
//
// onErr, when non-nil, receives watcher errors; watching continues after
// them.
func Watch(ctx context.Context, path string, onChange func(), onErr func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("store: create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("store: resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("store: watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				onChange()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if onErr != nil {
				onErr(err)
			}
		}
	}
}
