package registry

import "github.com/corevane/resilicore/corefault"

// DefaultConfigurationName is the reserved name of the configuration
// every Registry seeds at construction. It cannot be removed.
const DefaultConfigurationName = "default"

// Sentinel errors matching by Kind and Op, for errors.Is comparisons.
var (
	// ErrConfigurationNotFound matches any lookup of an unknown
	// configuration name, regardless of which operation raised it.
	ErrConfigurationNotFound = corefault.New(corefault.ConfigurationNotFound, "", "")

	// ErrDefaultConfigurationNotRemovable matches an attempt to remove
	// the reserved default configuration.
	ErrDefaultConfigurationNotRemovable = corefault.New(corefault.Validation, "registry.Registry.RemoveConfiguration", "default configuration cannot be removed")

	// ErrEmptyName matches an attempt to use "" as an entry or
	// configuration name.
	ErrEmptyName = corefault.New(corefault.Validation, "", "name must not be empty")
)
