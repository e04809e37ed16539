// Package cache implements the client-side query cache: read results keyed
// by query identity, with a staleness horizon, deduplicated in-flight
// fetches, and optimistic mutation with snapshot rollback.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Key identifies a cached query result, e.g. "todos" or "todos/42".
type Key string

// Store is the only shared mutable state in the client. All access goes
// through its read/write/invalidate contract.
type Store struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[Key]*entry
	gen     uint64

	group singleflight.Group
}

type entry struct {
	value     any
	fetchedAt time.Time
	stale     bool
}

// Snapshot captures an entry's exact state (including absence) so a failed
// mutation can put it back verbatim.
type Snapshot struct {
	key     Key
	value   any
	fetched time.Time
	stale   bool
	present bool
}

// Applied reports whether the optimistic updater ran, i.e. whether the
// entry existed when the snapshot was taken.
func (s Snapshot) Applied() bool { return s.present }

// New creates a store whose entries stay fresh for ttl after a fetch.
func New(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		entries: make(map[Key]*entry),
	}
}

// Get returns the cached value for key if present, not invalidated, and
// younger than the staleness horizon. Otherwise it fetches, stores the
// result, and returns it. Concurrent gets for the same key share a single
// in-flight fetch. Fetch errors are never cached.
func (s *Store) Get(ctx context.Context, key Key, fetch func(ctx context.Context) (any, error)) (any, error) {
	s.mu.Lock()
	if e, ok := s.entries[key]; ok && s.fresh(e) {
		v := e.value
		s.mu.Unlock()
		return v, nil
	}
	gen := s.gen
	s.mu.Unlock()

	v, err, _ := s.group.Do(string(key), func() (any, error) {
		// Another caller may have stored a fresh value between the
		// check above and this flight starting.
		s.mu.Lock()
		if e, ok := s.entries[key]; ok && s.fresh(e) {
			v := e.value
			s.mu.Unlock()
			return v, nil
		}
		s.mu.Unlock()

		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		// A Clear between the read and the fetch result means this
		// value belongs to a torn-down session; drop it.
		if s.gen == gen {
			s.entries[key] = &entry{value: v, fetchedAt: time.Now()}
		}
		s.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Peek returns the cached value without fetching, regardless of staleness.
func (s *Store) Peek(key Key) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set writes a fresh value for key, as if it had just been fetched.
func (s *Store) Set(key Key, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &entry{value: value, fetchedAt: time.Now()}
}

// Update applies an optimistic mutation: it snapshots the current entry,
// applies fn to the cached value, and makes the result immediately visible
// to readers. When the entry is absent fn is not called and the returned
// snapshot records the absence.
func (s *Store) Update(key Key, fn func(any) any) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return Snapshot{key: key}
	}
	snap := Snapshot{
		key:     key,
		value:   e.value,
		fetched: e.fetchedAt,
		stale:   e.stale,
		present: true,
	}
	e.value = fn(e.value)
	return snap
}

// Restore puts a snapshot back verbatim. A snapshot of an absent entry
// removes whatever is there now.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !snap.present {
		delete(s.entries, snap.key)
		return
	}
	s.entries[snap.key] = &entry{
		value:     snap.value,
		fetchedAt: snap.fetched,
		stale:     snap.stale,
	}
}

// Invalidate marks keys stale so the next Get refetches. In-flight fetches
// for those keys are forgotten so late joiners trigger a fresh one.
func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	for _, key := range keys {
		if e, ok := s.entries[key]; ok {
			e.stale = true
		}
	}
	s.mu.Unlock()
	for _, key := range keys {
		s.group.Forget(string(key))
	}
}

// Remove drops an entry entirely.
func (s *Store) Remove(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Clear empties the store on session teardown. Fetches still in flight
// cannot repopulate entries from the old session.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.entries = make(map[Key]*entry)
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) fresh(e *entry) bool {
	return !e.stale && time.Since(e.fetchedAt) < s.ttl
}

// Fetch is a typed wrapper around Store.Get.
func Fetch[T any](ctx context.Context, s *Store, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := s.Get(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Value is a typed wrapper around Store.Peek. The second result is false
// when the entry is absent or holds a different type.
func Value[T any](s *Store, key Key) (T, bool) {
	v, ok := s.Peek(key)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Mutate is a typed wrapper around Store.Update.
func Mutate[T any](s *Store, key Key, fn func(T) T) Snapshot {
	return s.Update(key, func(v any) any {
		t, ok := v.(T)
		if !ok {
			return v
		}
		return fn(t)
	})
}
