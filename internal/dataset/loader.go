package dataset

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Loader memoizes parsed tables for the lifetime of the process. Failed loads
// are not cached, so a fixed file is picked up on the next call.
type Loader struct {
	delimiter rune

	mu     sync.Mutex
	cache  map[string]*Table
	gen    map[string]uint64 // bumped by Invalidate
	hits   int
	parses int

	group singleflight.Group

	// afterParse, when set, runs between parsing and caching. Tests use it.
	afterParse func(key string)
}

// LoaderStats reports cache behavior.
type LoaderStats struct {
	Hits   int
	Parses int
	Cached int
}

// NewLoader returns a Loader. A zero delimiter means auto-detect per file.
func NewLoader(delimiter rune) *Loader {
	return &Loader{delimiter: delimiter, cache: make(map[string]*Table), gen: make(map[string]uint64)}
}

// Load returns the table at path, parsing it on first use.
func (l *Loader) Load(ctx context.Context, path string) (*Table, error) {
	key := cacheKey(path)

	l.mu.Lock()
	if t, ok := l.cache[key]; ok {
		l.hits++
		l.mu.Unlock()
		return t, nil
	}
	l.mu.Unlock()

	ch := l.group.DoChan(key, func() (interface{}, error) {
		l.mu.Lock()
		if t, ok := l.cache[key]; ok {
			l.hits++
			l.mu.Unlock()
			return t, nil
		}
		gen := l.gen[key]
		l.mu.Unlock()

		t, err := l.parseFile(path)
		if err != nil {
			return nil, err
		}
		if l.afterParse != nil {
			l.afterParse(key)
		}

		// a table parsed across an Invalidate is returned but not cached
		l.mu.Lock()
		l.parses++
		fresh := l.gen[key] == gen
		if fresh {
			l.cache[key] = t
		}
		l.mu.Unlock()
		if !fresh {
			log.Printf("dataset: %s invalidated while loading, not cached", path)
			return t, nil
		}
		log.Printf("dataset: loaded %s (%d rows, %d columns)", path, t.Len(), len(t.Columns))
		return t, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Table), nil
	}
}

func (l *Loader) parseFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Parse(f, ParseOptions{Path: path, Delimiter: l.delimiter})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Invalidate drops the cached table for path. A load already in flight for
// path still returns its result but does not cache it. It reports whether an
// entry existed.
func (l *Loader) Invalidate(path string) bool {
	key := cacheKey(path)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen[key]++
	_, ok := l.cache[key]
	delete(l.cache, key)
	return ok
}

// Stats returns a snapshot of the cache counters.
func (l *Loader) Stats() LoaderStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LoaderStats{Hits: l.hits, Parses: l.parses, Cached: len(l.cache)}
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
