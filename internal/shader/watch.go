package shader

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports writes to a fixed set of shader source files so the
// renderer can rebuild its program between passes. It only watches
// paths whose extension is a recognized stage type.
type Watcher struct {
	fw *fsnotify.Watcher

	// Changed receives the path of a shader file each time it is
	// written. Events for the same file may coalesce.
	Changed chan string
	// Errors forwards watcher errors. Losing the watcher is not fatal
	// for rendering, so callers typically just log these.
	Errors chan error

	watched map[string]bool
	done    chan struct{}
}

// NewWatcher starts watching the given shader files. Every path must
// have a .vert or .frag extension.
func NewWatcher(paths ...string) (*Watcher, error) {
	for _, p := range paths {
		if _, err := TypeFromPath(p); err != nil {
			return nil, err
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader watcher: %w", err)
	}

	w := &Watcher{
		fw:      fw,
		Changed: make(chan string, 8),
		Errors:  make(chan error, 1),
		watched: make(map[string]bool, len(paths)),
		done:    make(chan struct{}),
	}
	// Следим за каталогами, а не за самими файлами: многие редакторы
	// сохраняют через rename, и watch на файл при этом теряется.
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("shader watcher: %w", err)
		}
		w.watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("shader watcher: watch %s: %w", dir, err)
		}
	}

	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !w.watched[abs] {
				continue
			}
			select {
			case w.Changed <- abs:
			default:
				// канал полон - событие для этого файла уже в очереди
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		}
	}
}

// Close stops the watcher and releases its OS resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}
