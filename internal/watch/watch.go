// Package watch follows the selected file and reports changes to it.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/abenz1267/glance/internal/util"
	"github.com/fsnotify/fsnotify"
)

const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watcher watches at most one file. The parent directory is watched so
// files replaced by rename are still followed.
type Watcher struct {
	mu       sync.Mutex
	fs       *fsnotify.Watcher
	dir      string
	path     string
	onChange func(path string)
	onError  func(error)
	debounce *util.Debouncer
	done     chan struct{}
}

// New starts a watcher. onChange receives the watched path after changes
// settle for the debounce interval.
func New(debounce time.Duration, onChange func(path string), onError func(error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:       fw,
		onChange: onChange,
		onError:  onError,
		debounce: util.NewDebouncer(debounce),
		done:     make(chan struct{}),
	}

	go w.loop()

	return w, nil
}

// Watch replaces the watched file. An empty path stops watching.
func (w *Watcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		path = abs
	}

	if path == w.path {
		return nil
	}

	w.debounce.Stop()

	dir := ""
	if path != "" {
		dir = filepath.Dir(path)
	}

	if dir != w.dir {
		if w.dir != "" {
			_ = w.fs.Remove(w.dir)
		}

		if dir != "" {
			if err := w.fs.Add(dir); err != nil {
				w.dir = ""
				w.path = ""
				return err
			}
		}

		w.dir = dir
	}

	w.path = path

	return nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.path
}

func (w *Watcher) Close() error {
	w.debounce.Stop()

	err := w.fs.Close()
	<-w.done

	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}

			if e.Op&relevant == 0 {
				continue
			}

			w.mu.Lock()
			path := w.path
			w.mu.Unlock()

			if filepath.Clean(e.Name) != path {
				continue
			}

			w.debounce.Do(func() {
				if w.Path() == path {
					w.onChange(path)
				}
			})
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}

			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}
