package cryptokit

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/go-i2p/cryptokit/logging"
)

// A Key identifies one registered implementation.
type Key struct {
	Interface InterfaceID
	Algorithm AlgorithmID
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Interface, k.Algorithm)
}

// An Entry is one registration as reported by Entries.
type Entry struct {
	Key
	Name string
}

// A Template is what an implementation registers: an options template for
// one family. Templates are immutable once registered.
type Template interface {
	// Family returns the interface the template belongs to.
	Family() InterfaceID

	// TemplateName is the human-readable algorithm name.
	TemplateName() string
}

// A Registry maps (interface, algorithm) keys to templates. Only templates
// an application registers are reachable.
//
// Registration must complete before the first options or suite is
// initialized. After Seal, registration fails and lookups take no lock.
type Registry struct {
	mu        sync.RWMutex
	sealed    atomic.Bool
	templates map[Key]Template
	log       logging.Logger
}

// A RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used by the registry and every suite
// initialized from it.
func WithLogger(l logging.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		templates: make(map[Key]Template),
		log:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds t under (t.Family(), alg). A key can be registered once.
func (r *Registry) Register(alg AlgorithmID, t Template) error {
	if r == nil || t == nil {
		return ErrInvalidArgument
	}
	k := Key{Interface: t.Family(), Algorithm: alg}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Load() {
		return ErrRegistrySealed
	}
	if r.templates == nil {
		r.templates = make(map[Key]Template)
	}
	if existing, ok := r.templates[k]; ok {
		if existing == t {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, k)
	}
	r.templates[k] = t
	r.logger().Debug(context.Background(), "registered algorithm",
		"interface", k.Interface.String(), "algorithm", k.Algorithm.String(), "name", t.TemplateName())
	return nil
}

// Find returns the template registered under (iface, alg), or nil.
func (r *Registry) Find(iface InterfaceID, alg AlgorithmID) Template {
	if r == nil {
		return nil
	}
	k := Key{Interface: iface, Algorithm: alg}
	var t Template
	if r.sealed.Load() {
		t = r.templates[k]
	} else {
		r.mu.RLock()
		t = r.templates[k]
		r.mu.RUnlock()
	}
	if t == nil {
		r.logger().Debug(context.Background(), "no implementation registered",
			"interface", iface.String(), "algorithm", alg.String())
	}
	return t
}

// Seal ends the registration phase.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed.Store(true)
	r.mu.Unlock()
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

// Entries lists every registration ordered by interface then algorithm.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	out := make([]Entry, 0, len(r.templates))
	for k, t := range r.templates {
		out = append(out, Entry{Key: k, Name: t.TemplateName()})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Interface != out[j].Interface {
			return out[i].Interface < out[j].Interface
		}
		return out[i].Algorithm < out[j].Algorithm
	})
	return out
}

func (r *Registry) logger() logging.Logger {
	if r.log == nil {
		return logging.Nop()
	}
	return r.log
}

// lookup finds the template under (iface, alg) and asserts its concrete
// type. A missing entry or a template of the wrong family is reported as
// ErrMissingImplementation.
func lookup[T Template](r *Registry, iface InterfaceID, alg AlgorithmID) (T, error) {
	var zero T
	t := r.Find(iface, alg)
	if t == nil {
		return zero, fmt.Errorf("%w: %s/%s", ErrMissingImplementation, iface, alg)
	}
	typed, ok := t.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s/%s has template %T", ErrMissingImplementation, iface, alg, t)
	}
	return typed, nil
}
