package dataset

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch invalidates cached tables when their files change on disk. The
// returned channel receives the path of every invalidated file and is closed
// once ctx is cancelled.
//
// Parent directories are watched rather than the files so that editors which
// replace a file by rename are still observed.
func Watch(ctx context.Context, l *Loader, paths ...string) (<-chan string, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	watched := make(map[string]string, len(paths)) // abs -> path as configured
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs := cacheKey(p)
		watched[abs] = p
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	out := make(chan string, 8)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
					!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
					continue
				}
				p, ok := watched[cacheKey(ev.Name)]
				if !ok {
					continue
				}
				l.Invalidate(p)
				log.Printf("dataset: %s changed (%s), cache invalidated", p, ev.Op)
				select {
				case out <- p:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("dataset: watcher error: %v", err)
			}
		}
	}()
	return out, nil
}
