// Package registry layers named configuration, tags, and a lifecycle
// event stream over a concurrent keyed store of entries.
package registry

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/corevane/resilicore/corefault"
)

// Store is a concurrent keyed map of entries. All operations are
// linearizable per key.
type Store[K comparable, V any] interface {
	// ComputeIfAbsent returns the existing entry for key if present,
	// otherwise calls factory(key) exactly once and stores its result.
	// factory is never invoked twice for the same key under concurrent
	// access. If factory returns an error, no entry is stored and the
	// error is wrapped as a *corefault.Error of kind Instantiation.
	ComputeIfAbsent(key K, factory func(K) (V, error)) (V, error)

	// PutIfAbsent stores entry under key if absent, returning the
	// pre-existing entry and true on conflict, or the zero value and
	// false on success.
	PutIfAbsent(key K, entry V) (V, bool)

	// Find returns the entry for key, if present.
	Find(key K) (V, bool)

	// Remove deletes and returns the entry for key, if present.
	Remove(key K) (V, bool)

	// Replace atomically swaps the entry for key with newEntry,
	// returning the previous entry. A no-op returning (zero, false)
	// when key is absent.
	Replace(key K, newEntry V) (V, bool)

	// Values returns a weakly consistent snapshot of all entries. It
	// never panics under concurrent mutation.
	Values() []V
}

// concurrentStore guards a plain map with a mutex rather than sync.Map,
// so V need not be a comparable type (sync.Map's CompareAndSwap would
// require that). A singleflight.Group makes ComputeIfAbsent's factory
// run at most once per key even when many goroutines race on the same
// key, mirroring the JWKS refresh pattern this is grounded on.
type concurrentStore[K comparable, V any] struct {
	mu    sync.RWMutex
	data  map[K]V
	group singleflight.Group
}

// NewStore creates an empty concurrent Store.
func NewStore[K comparable, V any]() Store[K, V] {
	return &concurrentStore[K, V]{data: make(map[K]V)}
}

func (s *concurrentStore[K, V]) ComputeIfAbsent(key K, factory func(K) (V, error)) (V, error) {
	s.mu.RLock()
	existing, ok := s.data[key]
	s.mu.RUnlock()
	if ok {
		return existing, nil
	}

	groupKey := fmt.Sprint(key)
	result, err, _ := s.group.Do(groupKey, func() (any, error) {
		s.mu.RLock()
		existing, ok := s.data[key]
		s.mu.RUnlock()
		if ok {
			return existing, nil
		}

		v, ferr := factory(key)
		if ferr != nil {
			return nil, corefault.Wrap(corefault.Instantiation, "registry.Store.ComputeIfAbsent",
				"factory failed", ferr)
		}

		s.mu.Lock()
		if existing, ok := s.data[key]; ok {
			s.mu.Unlock()
			return existing, nil
		}
		s.data[key] = v
		s.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

func (s *concurrentStore[K, V]) PutIfAbsent(key K, entry V) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.data[key]; ok {
		return existing, true
	}
	s.data[key] = entry
	var zero V
	return zero, false
}

func (s *concurrentStore[K, V]) Find(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *concurrentStore[K, V]) Remove(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	if !ok {
		var zero V
		return zero, false
	}
	delete(s.data, key)
	return v, true
}

func (s *concurrentStore[K, V]) Replace(key K, newEntry V) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.data[key]
	if !ok {
		var zero V
		return zero, false
	}
	s.data[key] = newEntry
	return old, true
}

func (s *concurrentStore[K, V]) Values() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make([]V, 0, len(s.data))
	for _, v := range s.data {
		values = append(values, v)
	}
	return values
}
