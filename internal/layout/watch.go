package layout

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Update is a reloaded layout, or the error that prevented the reload.
type Update struct {
	Layout Layout
	Err    error
}

// Watch reloads the layout file whenever it changes. The directory is
// watched rather than the file so editors that replace the file on save are
// seen. The returned channel is closed once ctx is done and the watcher has
// shut down.
func Watch(ctx context.Context, path string) (<-chan Update, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", filepath.Dir(abs), err)
	}

	out := make(chan Update, 1)
	go func() {
		defer close(out)
		defer w.Close() //nolint:errcheck

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
					!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
					continue
				}
				l, err := Load(abs)
				if !send(ctx, out, Update{Layout: l, Err: err}) {
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				if !send(ctx, out, Update{Err: err}) {
					return
				}
			}
		}
	}()
	return out, nil
}

// send delivers u, replacing an undelivered older update.
func send(ctx context.Context, out chan Update, u Update) bool {
	for {
		select {
		case out <- u:
			return true
		case <-ctx.Done():
			return false
		default:
		}
		select {
		case <-out:
		default:
		}
	}
}
