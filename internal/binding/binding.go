// Package binding provides the immutable name-to-array mapping handed to
// model adapters. One binding carries observed data, a second carries latent
// realizations; the two are merged only when their key sets are disjoint.
// Consumers must not depend on key iteration order.
package binding

import "sort"

// Binding is an immutable mapping from variable name to Value. The zero
// Binding is distinct from an empty one: New() yields an empty binding,
// while a zero Binding reports IsZero and signals "not supplied" to
// callers that require one.
type Binding struct {
	values map[string]Value
}

// New returns an empty binding.
func New() Binding {
	return Binding{values: map[string]Value{}}
}

// FromMap builds a binding from a plain map. The map is copied.
func FromMap(m map[string]Value) Binding {
	values := make(map[string]Value, len(m))
	for k, v := range m {
		values[k] = v
	}
	return Binding{values: values}
}

// IsZero reports whether the binding was never constructed. An empty
// binding built with New() is not zero.
func (b Binding) IsZero() bool { return b.values == nil }

// Get returns the value bound to name, or a KeyNotFound error.
func (b Binding) Get(name string) (Value, error) {
	v, ok := b.values[name]
	if !ok {
		return Value{}, ErrKeyNotFound(name)
	}
	return v, nil
}

// Has reports whether name is bound.
func (b Binding) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// With returns a new binding that additionally maps name to v. The receiver
// is unchanged; rebinding an existing name replaces it in the copy only.
func (b Binding) With(name string, v Value) Binding {
	values := make(map[string]Value, len(b.values)+1)
	for k, val := range b.values {
		values[k] = val
	}
	values[name] = v
	return Binding{values: values}
}

// Merge combines two bindings into a new one. The key sets must be
// disjoint; any intersection fails with KeyConflict naming the shared keys.
func (b Binding) Merge(o Binding) (Binding, error) {
	var shared []string
	for k := range o.values {
		if _, ok := b.values[k]; ok {
			shared = append(shared, k)
		}
	}
	if len(shared) > 0 {
		sort.Strings(shared)
		return Binding{}, ErrKeyConflict(shared...)
	}
	values := make(map[string]Value, len(b.values)+len(o.values))
	for k, v := range b.values {
		values[k] = v
	}
	for k, v := range o.values {
		values[k] = v
	}
	return Binding{values: values}, nil
}

// Keys returns the bound names in sorted order. Sorting is a convenience
// for stable output; the binding itself is unordered.
func (b Binding) Keys() []string {
	keys := make([]string, 0, len(b.values))
	for k := range b.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of bound names.
func (b Binding) Len() int { return len(b.values) }
