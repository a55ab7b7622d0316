package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// settle is how long to wait after a change for an editor to finish saving.
const settle = time.Second / 10

// RunFunc performs one translation and returns the files it read.
type RunFunc func(ctx context.Context) ([]string, error)

// Watch calls run, then calls it again whenever one of the files it read (or
// always) changes, until ctx is done. Failed runs are logged and retried on
// the next change.
func Watch(ctx context.Context, always []string, run RunFunc) error {
	for ctx.Err() == nil {
		paths, err := run(ctx)
		if err != nil {
			log.Errorf("Translation failed: %v", err)
		}
		paths = append(paths, always...)

		if err := waitForChange(ctx, paths); err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Errorf("Error waiting for file change: %v", err)
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}
	}
	return nil
}

// waitForChange returns once one of paths is written, created, renamed or
// removed. Directories are watched rather than the files themselves so that
// editors replacing a file are noticed.
func waitForChange(ctx context.Context, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	files := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range paths {
		p = filepath.Clean(p)
		files[p] = true
		dirs[filepath.Dir(p)] = true
	}
	for d := range dirs {
		if err := watcher.Add(d); err != nil {
			return err
		}
	}

loop:
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-watcher.Errors:
			return err
		case ev := <-watcher.Events:
			if ev.Op == fsnotify.Chmod || !files[filepath.Clean(ev.Name)] {
				continue
			}
			log.Infof("Detected change of %s", ev.Name)
			break loop
		}
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(settle):
	}
	return ctx.Err()
}
