package registry

import (
	"sync"

	"github.com/corevane/resilicore/corefault"
	"github.com/corevane/resilicore/event"
)

// Registry layers named configuration, an immutable tag map, and a
// lifecycle event stream over a Store of entries keyed by name.
type Registry[V any] struct {
	store Store[string, V]

	configMu sync.RWMutex
	configs  map[string]any

	tags map[string]string

	events *event.Processor[EntryEvent[V]]
}

// New creates a Registry seeded with defaultConfig under the reserved
// name DefaultConfigurationName. tags is copied; the Registry never
// mutates it and always returns copies from Tags().
func New[V any](defaultConfig any, tags map[string]string) *Registry[V] {
	r := &Registry[V]{
		store:   NewStore[string, V](),
		configs: map[string]any{DefaultConfigurationName: defaultConfig},
		tags:    make(map[string]string, len(tags)),
		events:  event.NewProcessor[EntryEvent[V]](),
	}
	for k, v := range tags {
		r.tags[k] = v
	}
	return r
}

// Tags returns a copy of the registry's immutable tag map.
func (r *Registry[V]) Tags() map[string]string {
	out := make(map[string]string, len(r.tags))
	for k, v := range r.tags {
		out[k] = v
	}
	return out
}

// AddConfiguration registers cfg under name, overwriting any existing
// configuration of the same name (including, by design, "default" —
// callers wanting to change the default do so through this method;
// only removal of "default" is rejected).
func (r *Registry[V]) AddConfiguration(name string, cfg any) error {
	if name == "" {
		return ErrEmptyName
	}
	r.configMu.Lock()
	defer r.configMu.Unlock()
	r.configs[name] = cfg
	return nil
}

// Configuration returns the configuration registered under name, or a
// *corefault.Error of kind ConfigurationNotFound.
func (r *Registry[V]) Configuration(name string) (any, error) {
	r.configMu.RLock()
	defer r.configMu.RUnlock()

	cfg, ok := r.configs[name]
	if !ok {
		return nil, corefault.New(corefault.ConfigurationNotFound, "registry.Registry.Configuration",
			"unknown configuration \""+name+"\"")
	}
	return cfg, nil
}

// RemoveConfiguration deletes the configuration registered under name.
// Removing DefaultConfigurationName always fails.
func (r *Registry[V]) RemoveConfiguration(name string) error {
	if name == DefaultConfigurationName {
		return ErrDefaultConfigurationNotRemovable
	}

	r.configMu.Lock()
	defer r.configMu.Unlock()

	if _, ok := r.configs[name]; !ok {
		return corefault.New(corefault.ConfigurationNotFound, "registry.Registry.RemoveConfiguration",
			"unknown configuration \""+name+"\"")
	}
	delete(r.configs, name)
	return nil
}

// ComputeIfAbsent returns the entry named name if present, otherwise
// calls factory exactly once and publishes an EntryAdded event for the
// created entry.
func (r *Registry[V]) ComputeIfAbsent(name string, factory func(string) (V, error)) (V, error) {
	if name == "" {
		var zero V
		return zero, ErrEmptyName
	}

	created := false
	entry, err := r.store.ComputeIfAbsent(name, func(k string) (V, error) {
		created = true
		return factory(k)
	})
	if err != nil {
		return entry, err
	}
	if created {
		r.events.Process(EntryEvent[V]{Kind: EntryAdded, Name: name, NewEntry: entry})
	}
	return entry, nil
}

// Find returns the entry named name, if present.
func (r *Registry[V]) Find(name string) (V, bool) {
	return r.store.Find(name)
}

// Remove deletes and returns the entry named name, publishing an
// EntryRemoved event on success. A second Remove of the same name is a
// no-op that publishes nothing.
func (r *Registry[V]) Remove(name string) (V, bool) {
	removed, ok := r.store.Remove(name)
	if ok {
		r.events.Process(EntryEvent[V]{Kind: EntryRemoved, Name: name, NewEntry: removed})
	}
	return removed, ok
}

// Replace atomically swaps the entry named name with newEntry,
// publishing an EntryReplaced event on success. A no-op returning
// (zero, false) when name is absent.
func (r *Registry[V]) Replace(name string, newEntry V) (V, bool) {
	old, ok := r.store.Replace(name, newEntry)
	if ok {
		oldCopy := old
		r.events.Process(EntryEvent[V]{Kind: EntryReplaced, Name: name, NewEntry: newEntry, OldEntry: &oldCopy})
	}
	return old, ok
}

// AllEntries returns a weakly consistent snapshot of every registered
// entry.
func (r *Registry[V]) AllEntries() []V {
	return r.store.Values()
}

// OnEntryAdded subscribes c to every future EntryAdded event.
func (r *Registry[V]) OnEntryAdded(c event.Consumer[EntryEvent[V]]) {
	r.events.Register(EntryEvent[V]{Kind: EntryAdded}.TypeName(), c)
}

// OnEntryRemoved subscribes c to every future EntryRemoved event.
func (r *Registry[V]) OnEntryRemoved(c event.Consumer[EntryEvent[V]]) {
	r.events.Register(EntryEvent[V]{Kind: EntryRemoved}.TypeName(), c)
}

// OnEntryReplaced subscribes c to every future EntryReplaced event.
func (r *Registry[V]) OnEntryReplaced(c event.Consumer[EntryEvent[V]]) {
	r.events.Register(EntryEvent[V]{Kind: EntryReplaced}.TypeName(), c)
}

// OnAnyEvent subscribes c to every lifecycle event regardless of kind.
func (r *Registry[V]) OnAnyEvent(c event.Consumer[EntryEvent[V]]) {
	r.events.OnEvent(c)
}
