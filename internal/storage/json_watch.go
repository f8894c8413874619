package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/girassol/internal/logger"
)

const watchDebounce = 100 * time.Millisecond

// Watch reloads the store whenever another process rewrites the file and then
// calls onChange. It blocks until ctx is cancelled.
func (s *JSONStore) Watch(ctx context.Context, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory: save() replaces the file by rename, which drops a
	// watch placed on the file itself.
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	target := filepath.Clean(s.path)
	fired := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case fired <- struct{}{}:
				default:
				}
			})

		case <-fired:
			s.mu.Lock()
			err := s.reload()
			s.mu.Unlock()
			if err != nil {
				logger.Warn("Failed to reload store after external change", "path", s.path, "error", err)
				continue
			}
			logger.Debug("Reloaded store after external change", "path", s.path)
			if onChange != nil {
				onChange()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Store watcher error", "error", err)
		}
	}
}
