package wad

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Loader opens archives by path with an LRU cache of built indexes.
// Concurrent loads of the same path are deduplicated, so a file is read
// and parsed at most once no matter how many goroutines ask for it.
//
// Cached archives are shared; they are immutable, so this is safe.
type Loader struct {
	cache *lru.Cache[string, *Archive]
	group singleflight.Group
	opts  []Option
}

// NewLoader creates a loader caching up to size archives.
func NewLoader(size int, opts ...Option) (*Loader, error) {
	cache, err := lru.New[string, *Archive](size)
	if err != nil {
		return nil, err
	}
	return &Loader{cache: cache, opts: opts}, nil
}

// Load returns the indexed archive at path, from cache when possible.
func (l *Loader) Load(path string) (*Archive, error) {
	if a, ok := l.cache.Get(path); ok {
		return a, nil
	}
	v, err, _ := l.group.Do(path, func() (any, error) {
		if a, ok := l.cache.Get(path); ok {
			return a, nil
		}
		a, err := Open(path, l.opts...)
		if err != nil {
			return nil, err
		}
		l.cache.Add(path, a)
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Archive), nil
}

// Forget drops the cached archive for path, forcing the next Load to
// re-read the file.
func (l *Loader) Forget(path string) {
	l.cache.Remove(path)
}
