package breaker

import "github.com/corevane/resilicore/registry"

// Registry is a name-keyed set of circuit breakers. Because it is an
// ordinary registry.Registry, every add/replace/remove of a named
// breaker flows through the registry's own EntryAdded/EntryReplaced/
// EntryRemoved lifecycle stream. A breaker's state transitions do not
// pass through the registry: each breaker publishes them itself,
// through CircuitBreaker.OnStateChange and Config.OnStateChange.
type Registry = registry.Registry[*CircuitBreaker]

// NewRegistry creates a breaker Registry whose default configuration
// is defaultConfig and whose ComputeIfAbsent factories can ignore the
// name argument and just build off defaultConfig, or vary per name by
// calling Configuration first.
func NewRegistry(defaultConfig Config, tags map[string]string) *Registry {
	return registry.New[*CircuitBreaker](defaultConfig, tags)
}

// OfDefault returns the breaker named name, creating it from the
// registry's default configuration if absent.
func OfDefault(r *Registry, name string) (*CircuitBreaker, error) {
	return r.ComputeIfAbsent(name, func(n string) (*CircuitBreaker, error) {
		cfg, err := r.Configuration(registry.DefaultConfigurationName)
		if err != nil {
			return nil, err
		}
		return New(n, cfg.(Config)), nil
	})
}
