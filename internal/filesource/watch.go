package filesource

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce collapses bursts of file events (editors often write a file
// several times per save) into one reload.
const debounce = 500 * time.Millisecond

// ErrNotWatchable is returned by Watch for sources not opened from a directory.
var ErrNotWatchable = errors.New("filesource: only directory sources can be watched")

// Watch reloads the snapshot whenever a file under the content directory
// changes and then calls onChange, which may be nil. A reload that fails
// is logged and the previous content keeps being served. Watch blocks
// until ctx is done.
func (s *Source) Watch(ctx context.Context, onChange func()) error {
	if s.dir == "" {
		return ErrNotWatchable
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	err = filepath.WalkDir(s.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		return err
	}
	slog.Info("watching content directory", "dir", s.dir)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	reload := func() {
		if err := s.Reload(); err != nil {
			slog.Warn("content reload failed", "dir", s.dir, "error", err)
			return
		}
		slog.Info("content reloaded", "dir", s.dir)
		if onChange != nil {
			onChange()
		}
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			slog.Debug("content change detected", "file", event.Name, "op", event.Op.String())

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						slog.Warn("failed to watch new directory", "dir", event.Name, "error", err)
					}
				}
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, reload)
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("content watcher error", "error", err)
		}
	}
}
