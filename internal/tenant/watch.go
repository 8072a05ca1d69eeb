package tenant

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads registry whenever the tenants file at path is written or
// replaced. A file that fails to parse is logged and the previous tenants
// stay active. Close the returned watcher to stop.
func Watch(path string, registry *Registry) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory: editors and config management often replace the
	// file instead of writing it in place.
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", target, err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				reload(target, registry)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("tenant watcher error", "error", err)
			}
		}
	}()

	return watcher, nil
}

func reload(path string, registry *Registry) {
	next, err := LoadFromFile(path)
	if err != nil {
		slog.Warn("tenant registry reload failed", "path", path, "error", err)
		return
	}
	registry.Replace(next)
	slog.Info("tenant registry reloaded", "tenants", len(registry.All()))
}
