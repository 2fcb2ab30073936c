// Package watcher reloads the dictionaries when their files change.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before a reload
const DefaultDebounce = 500 * time.Millisecond

// ReloadFunc reloads the dictionaries
type ReloadFunc func(ctx context.Context) error

// Watcher monitors dictionary files and directories and calls a reload
// function once changes have settled.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	paths     []string
	debounce  time.Duration
	reload    ReloadFunc

	// Watched files, and directories whose whole content is watched
	files map[string]struct{}
	dirs  map[string]struct{}

	reloads int
	mu      sync.Mutex

	done chan struct{}
	wg   sync.WaitGroup
}

// New creates a watcher over paths. A debounce of zero uses DefaultDebounce.
func New(paths []string, debounce time.Duration, reload ReloadFunc) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating file watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		paths:     paths,
		debounce:  debounce,
		reload:    reload,
		files:     make(map[string]struct{}),
		dirs:      make(map[string]struct{}),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the configured paths. Directories are watched recursively.
func (w *Watcher) Start(ctx context.Context) error {
	for _, path := range w.paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		info, err := os.Stat(absPath)
		if err != nil {
			return err
		}

		if info.IsDir() {
			w.dirs[absPath] = struct{}{}
			if err := w.addTree(absPath); err != nil {
				return err
			}
			continue
		}

		// Watch single file by watching its directory; editors replace files on save
		w.files[absPath] = struct{}{}
		if err := w.fsWatcher.Add(filepath.Dir(absPath)); err != nil {
			return err
		}
	}

	w.wg.Add(1)
	go w.eventLoop(ctx)

	log.Printf("[Watcher] Watching %d dictionary paths", len(w.paths))
	return nil
}

// Stop shuts down the watcher
func (w *Watcher) Stop() error {
	close(w.done)
	w.wg.Wait()
	return w.fsWatcher.Close()
}

// Reloads returns the number of reloads triggered so far
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsWatcher.Add(path)
		}
		return nil
	})
}

// relevant reports whether a change of path affects the dictionaries
func (w *Watcher) relevant(path string) bool {
	if _, ok := w.files[path]; ok {
		return true
	}
	for dir := range w.dirs {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) eventLoop(ctx context.Context) {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return

		case <-ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.relevant(event.Name) {
				continue
			}

			// New subdirectories of a watched directory are watched too
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						log.Printf("[Watcher] Error watching %s: %v", event.Name, err)
					}
				}
			}

			timer.Reset(w.debounce)

		case <-timer.C:
			w.mu.Lock()
			w.reloads++
			w.mu.Unlock()

			if err := w.reload(ctx); err != nil {
				// The previous dictionaries stay in use
				log.Printf("[Watcher] Error reloading dictionaries: %v", err)
				continue
			}
			log.Printf("[Watcher] Reloaded dictionaries")

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[Watcher] Error: %v", err)
		}
	}
}
