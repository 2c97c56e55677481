package binding

import (
	"context"
	"fmt"
	"slices"
)

// Registry dispatches engine calls to Functions by name.
type Registry struct {
	functions map[string]Function
}

// NewRegistry indexes fns by name. Later functions replace earlier ones
// with the same name.
func NewRegistry(fns ...Function) *Registry {
	r := &Registry{functions: make(map[string]Function, len(fns))}
	for _, fn := range fns {
		r.functions[fn.Name()] = fn
	}
	return r
}

// Names returns the registered function names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the function registered under name.
func (r *Registry) Lookup(name string) (Function, bool) {
	fn, ok := r.functions[name]
	return fn, ok
}

// Call invokes name with named arguments.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) ([]byte, error) {
	fn, ok := r.functions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	if args == nil {
		args = map[string]any{}
	}
	return fn.Call(ctx, args)
}

// CallPositional invokes name with arguments in declaration order, the
// convention of engines that do not name arguments.
func (r *Registry) CallPositional(ctx context.Context, name string, args ...any) ([]byte, error) {
	fn, ok := r.functions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}

	params := fn.Params()
	if len(args) > len(params) {
		return nil, fmt.Errorf("%s: %w: got %d, want at most %d", name, ErrTooManyArguments, len(args), len(params))
	}

	named := make(map[string]any, len(args))
	for i, arg := range args {
		named[params[i]] = arg
	}
	return fn.Call(ctx, named)
}
