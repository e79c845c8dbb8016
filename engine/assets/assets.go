package assets

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"morphvk/engine/core"
)

// Watcher observes an asset directory tree and reports model files that
// were created or rewritten, so the application can reload them without
// a restart.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	events   chan string
	done     chan struct{}

	mutex    sync.Mutex
	isClosed bool
	started  bool
}

func NewWatcher() (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsnotify: fsWatch,
		events:   make(chan string, 16),
		done:     make(chan struct{}),
	}, nil
}

// Watch adds the named directory and all sub-directories to the watch
// list and starts the event loop.
func (w *Watcher) Watch(dir string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.isClosed {
		return errors.New("watcher already closed")
	}
	if err := w.addRecursive(dir); err != nil {
		return err
	}
	if !w.started {
		w.started = true
		go w.start()
	}
	return nil
}

// Events yields the paths of changed model assets.
func (w *Watcher) Events() <-chan string {
	return w.events
}

func (w *Watcher) Close() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.isClosed {
		return
	}
	w.isClosed = true
	close(w.done)
	if !w.started {
		w.fsnotify.Close()
		close(w.events)
	}
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return w.fsnotify.Add(walkPath)
		}
		return nil
	})
}

func (w *Watcher) start() {
	for {
		select {
		case e := <-w.fsnotify.Events:
			// Directories created while watching are picked up too.
			if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := w.addRecursive(e.Name); err != nil {
						core.LogWarn("could not watch new directory %s: %v", e.Name, err)
					}
				}
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !isModelAsset(e.Name) {
				continue
			}
			select {
			case w.events <- e.Name:
			default:
				// A pending reload for this burst is already queued.
			}

		case e := <-w.fsnotify.Errors:
			core.LogError("asset watcher: %v", e)

		case <-w.done:
			w.fsnotify.Close()
			close(w.events)
			return
		}
	}
}

func isModelAsset(path string) bool {
	switch filepath.Ext(path) {
	case ".gltf", ".glb":
		return true
	default:
		return false
	}
}
