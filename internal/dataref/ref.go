package dataref

import (
	"errors"
	"fmt"
)

// ErrUnresolved is returned by Get when the referenced value cannot be bound.
var ErrUnresolved = errors.New("unresolved reference")

// Ref is a possibly deferred reference to a value of type T.
type Ref[T any] interface {
	// HasData reports whether Get would succeed right now.
	HasData() bool
	// Get returns the bound value, or an error wrapping ErrUnresolved.
	Get() (T, error)
	// ID returns the identifier the reference was declared with, or 0 for
	// immediate values.
	ID() int
	// Clone returns an independent reference with the same resolution state.
	Clone() Ref[T]
}

// Registry resolves identifiers to values. Implementations are scoped to a
// single deck; there is no global registry.
type Registry[T any] interface {
	Lookup(id int) (T, bool)
}

// RegistryFunc adapts a function to the Registry interface.
type RegistryFunc[T any] func(id int) (T, bool)

// Lookup calls f(id).
func (f RegistryFunc[T]) Lookup(id int) (T, bool) {
	return f(id)
}

// Value is an immediate reference.
type Value[T any] struct {
	v T
}

// NewValue wraps v as an already resolved reference.
func NewValue[T any](v T) *Value[T] {
	return &Value[T]{v: v}
}

func (r *Value[T]) HasData() bool { return true }

func (r *Value[T]) Get() (T, error) { return r.v, nil }

func (r *Value[T]) ID() int { return 0 }

func (r *Value[T]) Clone() Ref[T] {
	return &Value[T]{v: r.v}
}

// Lookup is a lazy reference bound by identifier on first successful access.
type Lookup[T any] struct {
	id       int
	registry Registry[T]
	bound    bool
	v        T
}

// NewLookup returns a lazy reference to id in registry.
func NewLookup[T any](id int, registry Registry[T]) *Lookup[T] {
	return &Lookup[T]{id: id, registry: registry}
}

func (r *Lookup[T]) HasData() bool {
	if r.bound {
		return true
	}

	if r.registry == nil {
		return false
	}

	_, ok := r.registry.Lookup(r.id)

	return ok
}

// Get binds the reference if necessary. Failed lookups are not cached, so a
// later call succeeds once the target has been registered.
func (r *Lookup[T]) Get() (T, error) {
	if r.bound {
		return r.v, nil
	}

	if r.registry != nil {
		if v, ok := r.registry.Lookup(r.id); ok {
			r.v = v
			r.bound = true

			return v, nil
		}
	}

	var zero T

	return zero, fmt.Errorf("id %d: %w", r.id, ErrUnresolved)
}

func (r *Lookup[T]) ID() int { return r.id }

// Bound reports whether the value has been cached.
func (r *Lookup[T]) Bound() bool { return r.bound }

func (r *Lookup[T]) Clone() Ref[T] {
	c := *r
	return &c
}
