package voxmorph

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// CatalogWatcher re-decodes a shape whenever its backing .vox file is written.
// A shape that becomes undecodable drops out of the catalog until fixed, the
// same path a failed load takes at startup.
type CatalogWatcher struct {
	catalog *Catalog
	watcher *fsnotify.Watcher
	byPath  map[string]ShapeId
	done    chan struct{}
}

// WatchCatalog starts watching the backing files of every shape currently
// registered from disk. Close stops the watcher.
func WatchCatalog(catalog *Catalog) (*CatalogWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &CatalogWatcher{
		catalog: catalog,
		watcher: watcher,
		byPath:  make(map[string]ShapeId),
		done:    make(chan struct{}),
	}

	for id, path := range catalog.sourcePaths() {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		w.byPath[abs] = id
		if err := watcher.Add(path); err != nil {
			catalog.log.Warnf("cannot watch %q for shape %q: %v", path, id, err)
		}
	}

	go w.run()
	return w, nil
}

func (w *CatalogWatcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				abs = event.Name
			}
			id, ok := w.byPath[abs]
			if !ok {
				continue
			}
			w.catalog.log.Infof("reloading shape %q from %q", id, event.Name)
			w.catalog.AddShape(id, event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.catalog.log.Warnf("catalog watcher: %v", err)
		}
	}
}

// Close stops the watcher goroutine and releases the underlying notifier.
func (w *CatalogWatcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
