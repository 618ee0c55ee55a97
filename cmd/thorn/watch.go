package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thorn-lang/thorn/internal/config"
)

// watchFile runs path once, then re-runs it every time the file
// changes on disk, until interrupted. Each run is independent (a
// fresh Interpreter and Environment), matching file mode's normal
// per-run resource model; only the re-trigger loop is new.
func watchFile(path string, useColor bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	debounce := 200 * time.Millisecond
	if cfg, err := config.Load(".thornrc.yaml"); err == nil {
		debounce = cfg.WatchDebounceDuration()
	}

	run := func() {
		fmt.Fprintln(os.Stderr, colorize(fmt.Sprintf("--- running %s ---", path), colorGray, useColor))
		if _, err := runFile(path, useColor); err != nil {
			fmt.Fprintln(os.Stderr, colorize(err.Error(), colorRed, useColor))
		}
	}

	run()

	var timer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, run)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, colorize("watch error: "+err.Error(), colorYellow, useColor))
		}
	}
}
