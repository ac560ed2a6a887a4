package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces the bursts of write events editors produce for a
// single save.
const debounceWindow = 100 * time.Millisecond

// Watcher re-loads a config file whenever it changes on disk and delivers
// the parsed result. Consumers drain Configs between frames, so a reload
// never lands mid-frame. A file revision that fails to parse or validate is
// logged and dropped; the previous tuning stays in effect.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	Configs chan *Config
	closeCh chan struct{}
	once    sync.Once
}

// Watch starts watching the directory containing path. Watching the
// directory rather than the file survives editors that replace the file on
// save.
func Watch(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:    path,
		watcher: fw,
		Configs: make(chan *Config, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	var lastReload time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			now := time.Now()
			if now.Sub(lastReload) < debounceWindow {
				continue
			}
			lastReload = now
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "error", err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		slog.Warn("config reload rejected, keeping previous tuning", "path", w.path, "error", err)
		return
	}
	// Replace any undelivered revision; only the newest matters.
	select {
	case <-w.Configs:
	default:
	}
	select {
	case w.Configs <- cfg:
	case <-w.closeCh:
	}
	slog.Info("config reloaded", "path", w.path)
}
