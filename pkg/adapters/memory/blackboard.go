package memory

import (
	"github.com/zorpastaman/behaviortree/pkg/ports"
)

type slot struct {
	name  ports.PropertyName
	value any
}

// Blackboard implements ports.Blackboard with a map keyed by property ID.
// Names sharing an ID are chained in the same bucket and told apart by name,
// so a hash collision never aliases two properties.
// It is not safe for concurrent use: trees tick on a single goroutine.
type Blackboard struct {
	values map[uint64][]slot
	size   int

	// id overrides PropertyName.ID in tests.
	id func(ports.PropertyName) uint64
}

// NewBlackboard creates an empty blackboard.
func NewBlackboard() *Blackboard {
	return &Blackboard{}
}

// NewBlackboardFrom creates a blackboard holding values keyed by name.
func NewBlackboardFrom(values map[string]any) *Blackboard {
	bb := NewBlackboard()
	for name, v := range values {
		bb.Set(ports.NewPropertyName(name), v)
	}
	return bb
}

func (b *Blackboard) key(p ports.PropertyName) uint64 {
	if b.id != nil {
		return b.id(p)
	}
	return p.ID()
}

// find returns the bucket of p and the position of p in it, or -1.
func (b *Blackboard) find(p ports.PropertyName) (uint64, int) {
	k := b.key(p)
	for i, s := range b.values[k] {
		if s.name.Name() == p.Name() {
			return k, i
		}
	}
	return k, -1
}

func (b *Blackboard) Get(p ports.PropertyName) (any, bool) {
	k, i := b.find(p)
	if i < 0 {
		return nil, false
	}
	return b.values[k][i].value, true
}

func (b *Blackboard) Set(p ports.PropertyName, value any) {
	if b.values == nil {
		b.values = make(map[uint64][]slot)
	}
	k, i := b.find(p)
	if i >= 0 {
		b.values[k][i].value = value
		return
	}
	b.values[k] = append(b.values[k], slot{name: p, value: value})
	b.size++
}

func (b *Blackboard) Remove(p ports.PropertyName) bool {
	k, i := b.find(p)
	if i < 0 {
		return false
	}
	bucket := b.values[k]
	if len(bucket) == 1 {
		delete(b.values, k)
	} else {
		b.values[k] = append(bucket[:i:i], bucket[i+1:]...)
	}
	b.size--
	return true
}

func (b *Blackboard) Contains(p ports.PropertyName) bool {
	_, i := b.find(p)
	return i >= 0
}

func (b *Blackboard) Properties() []ports.PropertyName {
	out := make([]ports.PropertyName, 0, b.size)
	for _, bucket := range b.values {
		for _, s := range bucket {
			out = append(out, s.name)
		}
	}
	return out
}

// Values returns a copy of the contents keyed by property name.
func (b *Blackboard) Values() map[string]any {
	out := make(map[string]any, b.size)
	for _, bucket := range b.values {
		for _, s := range bucket {
			out[s.name.Name()] = s.value
		}
	}
	return out
}
