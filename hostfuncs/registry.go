// Package hostfuncs provides the host capabilities exposed into the script
// runtime - diagnostic logging and blocking outbound requests - and the
// registry that installs them into a runtime's global namespace before any
// script executes.
package hostfuncs

import (
	"context"
	"fmt"
	"sort"

	"github.com/dop251/goja"
)

// NativeFunc is the signature of a host-backed function callable from
// script code.
type NativeFunc func(goja.FunctionCall) goja.Value

// Capability is a host-implemented function or object installed into the
// script runtime's global namespace.
type Capability interface {
	// Name is the capability's global identifier (e.g. "console", "request").
	Name() string

	// Install binds the capability into the runtime described by b.
	Install(b Binding) error
}

// Binding carries everything a Capability needs at install time.
type Binding struct {
	// Context is the host context capability calls run under.
	Context context.Context

	// VM is the runtime being populated.
	VM *goja.Runtime

	wrap func(name string, fn NativeFunc) NativeFunc
}

// Func wraps fn in the registry's middleware chain and converts it to a
// runtime value ready to be bound under name.
func (b Binding) Func(name string, fn NativeFunc) goja.Value {
	// Convert to the unnamed func type so goja binds this as a native
	// function; a named type falls through ToValue's type switch into
	// reflect-based binding.
	return b.VM.ToValue((func(goja.FunctionCall) goja.Value)(b.wrap(name, fn)))
}

// Registry is an immutable collection of capabilities. Once created via
// NewRegistry, capabilities cannot be added or removed.
type Registry struct {
	caps       []Capability
	names      []string // sorted
	middleware []Middleware
}

// registryBuilder accumulates configuration during registry construction.
type registryBuilder struct {
	caps       []Capability
	seen       map[string]bool
	middleware []Middleware
	errors     []error
}

// RegistryOption is a functional option for configuring a Registry.
type RegistryOption func(*registryBuilder)

// NewRegistry creates an immutable Registry with the given options.
// Returns an error if any capability name is registered twice.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	b := &registryBuilder{seen: make(map[string]bool)}
	for _, opt := range opts {
		opt(b)
	}
	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	names := make([]string, 0, len(b.caps))
	for _, c := range b.caps {
		names = append(names, c.Name())
	}
	sort.Strings(names)

	return &Registry{
		caps:       b.caps,
		names:      names,
		middleware: b.middleware,
	}, nil
}

// WithCapability registers a capability.
func WithCapability(c Capability) RegistryOption {
	return func(b *registryBuilder) {
		if c.Name() == "" {
			b.errors = append(b.errors, fmt.Errorf("capability name cannot be empty"))
			return
		}
		if b.seen[c.Name()] {
			b.errors = append(b.errors, fmt.Errorf("duplicate capability name: %q", c.Name()))
			return
		}
		b.seen[c.Name()] = true
		b.caps = append(b.caps, c)
	}
}

// WithMiddleware adds middleware to the registry.
// Middleware executes in FIFO order (first added wraps outermost).
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}

// InstallAll binds every registered capability into vm. Must run before any
// script compiles so the plugin's top-level code can observe the
// capabilities.
func (r *Registry) InstallAll(ctx context.Context, vm *goja.Runtime) error {
	b := Binding{
		Context: ctx,
		VM:      vm,
		wrap: func(name string, fn NativeFunc) NativeFunc {
			// Apply in reverse so the first middleware wraps outermost.
			for i := len(r.middleware) - 1; i >= 0; i-- {
				fn = r.middleware[i](name, fn)
			}
			return fn
		},
	}
	for _, c := range r.caps {
		if err := c.Install(b); err != nil {
			return fmt.Errorf("failed to install capability %q: %w", c.Name(), err)
		}
	}
	return nil
}

// Has returns true if a capability with the given name is registered.
func (r *Registry) Has(name string) bool {
	for _, c := range r.caps {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// Names returns a sorted list of all registered capability names.
func (r *Registry) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}
