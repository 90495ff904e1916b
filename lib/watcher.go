// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package lib

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// editors tend to write a file in several steps
const reloadDebounce = 200 * time.Millisecond

// ConfigWatcher reloads the configuration file when it changes.
type ConfigWatcher struct {
	watcher  *fsnotify.Watcher
	filename string
	logger   *zap.Logger
	apply    func(*Config)
	done     chan struct{}
}

// WatchConfig starts watching filename. apply is called from the watcher's
// goroutine with each configuration that loads and validates; broken edits
// are logged and otherwise ignored. Watching stops when ctx is done or Close
// is called.
func WatchConfig(ctx context.Context, filename string, logger *zap.Logger, apply func(*Config)) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	filename, err = filepath.Abs(filename)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	// watch the directory, since saving often replaces the file
	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		watcher.Close()
		return nil, err
	}

	cw := &ConfigWatcher{
		watcher:  watcher,
		filename: filename,
		logger:   logger,
		apply:    apply,
		done:     make(chan struct{}),
	}
	go cw.run(ctx)
	return cw, nil
}

func (cw *ConfigWatcher) run(ctx context.Context) {
	defer close(cw.done)

	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(reloadDebounce)
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Warn("config watcher", zap.Error(err))
		case <-timer.C:
			cw.reload()
		}
	}
}

func (cw *ConfigWatcher) reload() {
	config, err := LoadConfig(cw.filename)
	if err != nil {
		cw.logger.Warn("not reloading config", zap.String("path", cw.filename), zap.Error(err))
		return
	}
	cw.logger.Info("reloaded config", zap.String("path", cw.filename))
	cw.apply(config)
}

// Close stops watching and waits for the watcher goroutine to exit.
func (cw *ConfigWatcher) Close() error {
	err := cw.watcher.Close()
	<-cw.done
	return err
}
