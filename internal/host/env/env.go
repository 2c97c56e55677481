// Package env exposes the host process environment to scripts as a
// read-only snapshot. Snapshots are materialized from a Source on every
// call, so they always reflect the environment at the time of access, and
// nothing a caller does to a snapshot reaches the process environment.
package env

import (
	"maps"
	"os"
	"slices"
	"strings"
)

// Source produces environment entries in KEY=VALUE form.
type Source interface {
	Environ() []string
}

// OSSource reads the live process environment.
type OSSource struct{}

func (OSSource) Environ() []string {
	return os.Environ()
}

// MapSource serves a fixed mapping. It lets tests and embedders inject a
// fake environment.
type MapSource map[string]string

func (m MapSource) Environ() []string {
	entries := make([]string, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		entries = append(entries, name+"="+m[name])
	}
	return entries
}

// Accessor hands out environment snapshots.
type Accessor struct {
	source Source
}

// NewAccessor creates an Accessor over source. A nil source reads the
// process environment.
func NewAccessor(source Source) *Accessor {
	if source == nil {
		source = OSSource{}
	}
	return &Accessor{source: source}
}

// Snapshot materializes the current environment. It never fails; an empty
// environment yields an empty snapshot.
func (a *Accessor) Snapshot() Snapshot {
	entries := a.source.Environ()
	vars := make(map[string]string, len(entries))

	for _, entry := range entries {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			continue
		}
		// First occurrence wins, as with os.Getenv.
		if _, seen := vars[name]; seen {
			continue
		}
		vars[name] = value
	}

	return Snapshot{vars: vars}
}

// Snapshot is an immutable name to value mapping.
type Snapshot struct {
	vars map[string]string
}

// Get returns the value of name and whether it is set.
func (s Snapshot) Get(name string) (string, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Value returns the value of name, or "" when it is not set.
func (s Snapshot) Value(name string) string {
	return s.vars[name]
}

// Has reports whether name is set.
func (s Snapshot) Has(name string) bool {
	_, ok := s.vars[name]
	return ok
}

// Len returns the number of variables.
func (s Snapshot) Len() int {
	return len(s.vars)
}

// Names returns every variable name in sorted order.
func (s Snapshot) Names() []string {
	return slices.Sorted(maps.Keys(s.vars))
}

// Map returns a copy of the mapping. Changing it has no effect on the
// snapshot or on the process environment.
func (s Snapshot) Map() map[string]string {
	out := make(map[string]string, len(s.vars))
	maps.Copy(out, s.vars)
	return out
}
