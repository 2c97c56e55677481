// Package binding is the surface an embedded script engine calls into. OS
// is the typed facade (env, readFile, writeFile); Registry exposes the same
// operations as named functions taking engine arguments and returning
// CBOR-encoded results.
package binding

import (
	"github.com/Cyclone1070/hostos/internal/host/buffer"
	"github.com/Cyclone1070/hostos/internal/host/env"
	"github.com/Cyclone1070/hostos/internal/host/file"
)

// OS bundles the host capabilities handed to a script.
type OS struct {
	env   *env.Accessor
	files *file.Gateway
}

// NewOS creates the facade from its two components.
func NewOS(envAccessor *env.Accessor, files *file.Gateway) *OS {
	return &OS{env: envAccessor, files: files}
}

// Env returns a read-only snapshot of the environment taken now.
func (o *OS) Env() env.Snapshot {
	return o.env.Snapshot()
}

// ReadFile reads the entire content of filename.
func (o *OS) ReadFile(filename string) (buffer.Buffer, error) {
	return o.files.ReadFile(filename)
}

// WriteFile replaces the entire content of filename.
func (o *OS) WriteFile(filename string, content file.Content) error {
	return o.files.WriteFile(filename, content)
}
