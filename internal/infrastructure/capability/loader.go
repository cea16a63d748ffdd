// Package capability implements the memoizing loader for external
// collaborators (geocoder, persistence gateways, forwarder). Each
// capability is constructed at most once per process; concurrent
// requesters share the same in-flight construction instead of
// triggering duplicates.
package capability

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Loader caches capability handles by stable id. A construction
// failure is cached too: a missing capability is fatal for that
// feature only, and stays missing until Reset.
type Loader struct {
	group singleflight.Group

	mu      sync.Mutex
	handles map[string]result
}

type result struct {
	handle any
	err    error
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{handles: map[string]result{}}
}

// Load returns the cached handle for id, constructing it with build on
// first use. Concurrent first uses share one build call.
func (l *Loader) Load(id string, build func() (any, error)) (any, error) {
	l.mu.Lock()
	if r, ok := l.handles[id]; ok {
		l.mu.Unlock()
		return r.handle, r.err
	}
	l.mu.Unlock()

	v, err, _ := l.group.Do(id, func() (any, error) {
		handle, err := build()
		if err != nil {
			handle = nil
			err = fmt.Errorf("capability %s unavailable: %w", id, err)
		}
		// The wrapped error is what gets cached, so every caller reads
		// the same failure regardless of who triggered the build.
		l.mu.Lock()
		l.handles[id] = result{handle: handle, err: err}
		l.mu.Unlock()
		return handle, err
	})
	return v, err
}

// Loaded reports whether the capability resolved successfully.
func (l *Loader) Loaded(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.handles[id]
	return ok && r.err == nil
}

// Reset forgets a cached capability so the next Load rebuilds it.
func (l *Loader) Reset(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.handles, id)
}
