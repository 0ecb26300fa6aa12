package indexer

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet window applied to file-system event bursts
// before a rebuild is triggered, so a save-all produces one rebuild instead
// of one per file.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches the workspace for changes to candidate files and triggers
// debounced rebuilds through the Rebuilder.
type Watcher struct {
	rebuilder    *Rebuilder
	discovery    *FileDiscovery
	rootDir      string
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
	stopOnce     sync.Once
}

// NewWatcher creates a recursive file watcher over the workspace root.
func NewWatcher(rootDir string, rebuilder *Rebuilder, discovery *FileDiscovery, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		rebuilder:    rebuilder,
		discovery:    discovery,
		rootDir:      rootDir,
		watcher:      fsWatcher,
		debounceTime: debounce,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}

	if err := w.addDirectoriesRecursively(rootDir); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return w, nil
}

// Start begins watching for file changes.
func (w *Watcher) Start(ctx context.Context) {
	go w.watch(ctx)
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		w.watcher.Close()
	})
}

// watch is the event loop with debouncing.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	var debounceTimer *time.Timer
	rebuildCh := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			// New directories need to be watched as they appear.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if w.shouldWatchDirectory(event.Name) {
						if err := w.addDirectoriesRecursively(event.Name); err != nil {
							log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
						}
					}
				}
			}

			// Reset the debounce timer, draining it if it already fired.
			if debounceTimer != nil {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
			}

			debounceTimer = time.AfterFunc(w.debounceTime, func() {
				select {
				case rebuildCh <- struct{}{}:
				default:
				}
			})

		case <-rebuildCh:
			w.rebuilder.Trigger(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// shouldProcessEvent filters events down to candidate-file operations.
// Directory creation passes through so new subtrees get watched.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	relPath, err := filepath.Rel(w.rootDir, event.Name)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	if w.discovery.ShouldExclude(relPath) {
		return false
	}

	if w.discovery.Matches(relPath) {
		return true
	}

	// A created directory does not match file globs but may hold files
	// that will.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			return true
		}
	}

	return false
}

// shouldWatchDirectory checks if a directory should be watched.
func (w *Watcher) shouldWatchDirectory(path string) bool {
	relPath, err := filepath.Rel(w.rootDir, path)
	if err != nil {
		return false
	}
	return !w.discovery.ShouldExclude(filepath.ToSlash(relPath))
}

// addDirectoriesRecursively adds all non-excluded directories to the watcher.
func (w *Watcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Printf("Warning: error accessing %s: %v", path, err)
			return nil
		}

		if !info.IsDir() {
			return nil
		}

		if path != w.rootDir && !w.shouldWatchDirectory(path) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: failed to watch directory %s: %v", path, err)
		}

		return nil
	})
}
