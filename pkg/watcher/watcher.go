package watcher

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Watcher watches the directories holding catalog files and emits a batch of
// changed paths whenever matching files are written, created, renamed or
// removed.
type Watcher struct {
	fs       *fsnotify.Watcher
	patterns []string
	debounce *Debouncer
	changes  chan []string
}

// New watches the directories that the glob patterns can match. Patterns
// with ** also watch every existing subdirectory below their static prefix.
func New(patterns []string, debounce *Debouncer) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if debounce == nil {
		debounce = NewDebouncer(0)
	}
	w := &Watcher{
		fs:       fsw,
		patterns: patterns,
		debounce: debounce,
		changes:  make(chan []string, 1),
	}

	for _, dir := range watchDirs(patterns) {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return w, nil
}

// watchDirs returns the existing directories to subscribe to.
func watchDirs(patterns []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if dir == "" {
			dir = "."
		}
		if seen[dir] {
			return
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}

	for _, pattern := range patterns {
		if !strings.Contains(pattern, "**") {
			matches, _ := doublestar.FilepathGlob(filepath.Dir(pattern))
			for _, m := range matches {
				add(m)
			}
			continue
		}
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		_ = filepath.WalkDir(filepath.FromSlash(base), func(path string, d os.DirEntry, err error) error {
			if err == nil && d.IsDir() {
				add(path)
			}
			return nil
		})
	}
	return dirs
}

// Matches reports whether path is a catalog file under the watched patterns.
func (w *Watcher) Matches(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range w.patterns {
		pattern = filepath.ToSlash(pattern)
		if pattern == slashed {
			return true
		}
		if ok, err := doublestar.Match(pattern, slashed); err == nil && ok {
			return true
		}
	}
	return false
}

// Changes delivers debounced batches of changed paths. A batch is dropped if
// the previous one has not been received yet; the next batch supersedes it.
func (w *Watcher) Changes() <-chan []string {
	return w.changes
}

// Run forwards filesystem events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.debounce.Cancel()
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !w.Matches(ev.Name) {
				continue
			}
			w.debounce.Add(ev.Name, w.emit)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("watcher: %v", err)
		}
	}
}

func (w *Watcher) emit(paths []string) {
	select {
	case w.changes <- paths:
	default:
		log.Printf("watcher: reload already pending, dropping %d paths", len(paths))
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.debounce.Cancel()
	return w.fs.Close()
}
