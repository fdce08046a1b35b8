package contextfile

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-reads an attached context file when it changes on disk, so the
// next request composes with current text. Updates are delivered on Updates;
// read errors (e.g. the file was removed) on Errors.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string

	updates chan Context
	errs    chan error
	done    chan struct{}
}

// Watch starts watching the given context file. The file's directory is
// watched rather than the file itself so editors that replace-on-save
// (write to temp, rename over) are still observed.
func Watch(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		watcher: fw,
		path:    abs,
		updates: make(chan Context, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string { return w.path }

// Updates returns the channel of re-read context contents.
func (w *Watcher) Updates() <-chan Context { return w.updates }

// Errors returns the channel of read failures.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close stops watching. The update and error channels are closed.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	defer close(w.updates)
	defer close(w.errs)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			ctx, err := Load(w.path)
			if err != nil {
				send(w.errs, err)
				continue
			}
			send(w.updates, ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			send(w.errs, err)
		}
	}
}

// send delivers v without blocking: an older pending value is replaced, so a
// slow consumer only ever sees the most recent state.
func send[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
