package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reloader watches a config file and calls back on change.
type Reloader struct {
	watcher *fsnotify.Watcher
	path    string
	apply   func(*Config, string)
}

// NewReloader creates a file watcher for the given config path. The
// apply callback receives the freshly loaded config and its hash.
func NewReloader(path string, apply func(*Config, string)) (*Reloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create file watcher: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		if err := watcher.Add(path); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("config: watch %q: %w", path, err)
		}
	}
	return &Reloader{watcher: watcher, path: path, apply: apply}, nil
}

// Run watches for file changes and reloads config. Blocks until ctx is
// cancelled.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()

	// Debounce: wait 500ms after the last write before reloading.
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(500*time.Millisecond, func() {
					cfg, hash, err := LoadWithHash(r.path)
					if err != nil {
						fmt.Fprintf(os.Stderr, "hot-reload failed: %v\n", err)
						return
					}
					r.apply(cfg, hash)
					fmt.Fprintf(os.Stderr, "hot-reload: config reloaded\n")
				})
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "file watcher error: %v\n", err)
		}
	}
}
