// Package flags holds read-only feature toggles loaded from config.
// Unknown flags are always off.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/enrich/internal/log"
)

const (
	// FlagDuplicatesBlockCreate makes duplicate addresses close the creation
	// gate in addition to invalid ones.
	FlagDuplicatesBlockCreate = "duplicates-block-create"
)

// Known lists every flag the application reads, with its default.
var Known = map[string]bool{
	FlagDuplicatesBlockCreate: false,
}

// Registry answers flag lookups.
type Registry struct {
	flags map[string]bool
}

// New copies values into a Registry. A nil map yields all flags disabled.
func New(values map[string]bool) *Registry {
	r := &Registry{flags: maps.Clone(values)}
	if r.flags == nil {
		r.flags = map[string]bool{}
	}
	log.Debug(log.CatConfig, "feature flags loaded", "count", len(r.flags))
	return r
}

// Enabled reports whether name is on. Nil registries and unknown names are off.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	on, ok := r.flags[name]
	if !ok {
		log.Debug(log.CatConfig, "unknown flag", "flag", name)
	}
	return on
}

// All returns a copy of the configured values.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.flags)
}

// Names returns the known flag names merged with any configured ones, sorted.
func (r *Registry) Names() []string {
	names := slices.Collect(maps.Keys(Known))
	for name := range r.All() {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// IsKnown reports whether name is a flag the application reads.
func IsKnown(name string) bool {
	_, ok := Known[name]
	return ok
}
