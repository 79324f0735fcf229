package ports

import (
	"github.com/cespare/xxhash/v2"
)

// PropertyName is a stable blackboard key: a string name hashed to a
// fixed-size identifier. Two PropertyName values with the same name are equal.
type PropertyName struct {
	id   uint64
	name string
}

// NewPropertyName hashes name into a PropertyName.
func NewPropertyName(name string) PropertyName {
	return PropertyName{id: xxhash.Sum64String(name), name: name}
}

// ID returns the hashed identifier.
func (p PropertyName) ID() uint64 { return p.id }

// Name returns the original property name.
func (p PropertyName) Name() string { return p.name }

func (p PropertyName) String() string { return p.name }

// Blackboard is the shared data store nodes exchange values through.
// Missing keys are reported with a boolean, never with an error or a panic.
// The engine never inspects its contents.
type Blackboard interface {
	// Get returns the value stored under p. ok is false when p is absent.
	Get(p PropertyName) (value any, ok bool)
	// Set stores value under p, replacing any previous value.
	Set(p PropertyName, value any)
	// Remove deletes p and reports whether it was present.
	Remove(p PropertyName) bool
	// Contains reports whether p is present.
	Contains(p PropertyName) bool
	// Properties returns the names currently stored, in no particular order.
	Properties() []PropertyName
}

// GetValue reads a struct-like value stored by value.
// It reports false when p is absent or holds a different type.
func GetValue[T any](bb Blackboard, p PropertyName) (T, bool) {
	var zero T
	v, ok := bb.Get(p)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// SetValue stores a copy of value under p.
func SetValue[T any](bb Blackboard, p PropertyName, value T) {
	bb.Set(p, value)
}

// GetRef reads a class-like value stored by reference. Mutations through the
// returned pointer are visible to every node sharing the blackboard.
func GetRef[T any](bb Blackboard, p PropertyName) (*T, bool) {
	v, ok := bb.Get(p)
	if !ok {
		return nil, false
	}
	ref, ok := v.(*T)
	if !ok || ref == nil {
		return nil, false
	}
	return ref, true
}

// SetRef stores a reference under p.
func SetRef[T any](bb Blackboard, p PropertyName, ref *T) {
	bb.Set(p, ref)
}
