package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/schema"
)

// LeafFactory constructs a leaf policy from validated arguments.
type LeafFactory func(args Args) (behavior.LeafBehavior, error)

// DecoratorFactory constructs a decorator policy from validated arguments.
type DecoratorFactory func(args Args) (behavior.DecoratorBehavior, error)

// CompositeFactory constructs a composite policy from validated arguments.
type CompositeFactory func(args Args) (behavior.CompositeBehavior, error)

// Entry describes one registered node type.
type Entry struct {
	Type        string          `json:"type"`
	Kind        domain.NodeKind `json:"kind"`
	Params      schema.Params   `json:"params"`
	Description string          `json:"description,omitempty"`

	leaf      LeafFactory
	decorator DecoratorFactory
	composite CompositeFactory
}

// Validate checks args against the entry's parameters.
func (e *Entry) Validate(args []any) error {
	return schema.Validate(e.Params, args)
}

// NewLeaf runs the leaf factory.
func (e *Entry) NewLeaf(args []any) (behavior.LeafBehavior, error) {
	if e.leaf == nil {
		return nil, fmt.Errorf("%s is a %s: %w", e.Type, e.Kind, domain.ErrKindMismatch)
	}
	return e.leaf(Args(args))
}

// NewDecorator runs the decorator factory.
func (e *Entry) NewDecorator(args []any) (behavior.DecoratorBehavior, error) {
	if e.decorator == nil {
		return nil, fmt.Errorf("%s is a %s: %w", e.Type, e.Kind, domain.ErrKindMismatch)
	}
	return e.decorator(Args(args))
}

// NewComposite runs the composite factory.
func (e *Entry) NewComposite(args []any) (behavior.CompositeBehavior, error) {
	if e.composite == nil {
		return nil, fmt.Errorf("%s is a %s: %w", e.Type, e.Kind, domain.ErrKindMismatch)
	}
	return e.composite(Args(args))
}

// Option configures a registration.
type Option func(*Entry)

// WithDescription attaches a human-readable description, shown by catalogues.
func WithDescription(desc string) Option {
	return func(e *Entry) {
		e.Description = desc
	}
}

// Registry maps stable type identifiers to node factories.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
	}
}

// RegisterLeaf adds a leaf type to the registry.
// If a type with the same identifier exists, it is overwritten.
func (r *Registry) RegisterLeaf(typeID string, params schema.Params, fn LeafFactory, opts ...Option) {
	r.register(&Entry{Type: typeID, Kind: domain.KindLeaf, Params: params, leaf: fn}, opts)
}

// RegisterDecorator adds a decorator type to the registry.
// If a type with the same identifier exists, it is overwritten.
func (r *Registry) RegisterDecorator(typeID string, params schema.Params, fn DecoratorFactory, opts ...Option) {
	r.register(&Entry{Type: typeID, Kind: domain.KindDecorator, Params: params, decorator: fn}, opts)
}

// RegisterComposite adds a composite type to the registry.
// If a type with the same identifier exists, it is overwritten.
func (r *Registry) RegisterComposite(typeID string, params schema.Params, fn CompositeFactory, opts ...Option) {
	r.register(&Entry{Type: typeID, Kind: domain.KindComposite, Params: params, composite: fn}, opts)
}

func (r *Registry) register(e *Entry, opts []Option) {
	for _, opt := range opts {
		opt(e)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.Type] = e
}

// Lookup returns the entry registered under typeID.
func (r *Registry) Lookup(typeID string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[typeID]
	return e, ok
}

// Resolve looks up typeID and checks its kind and args.
// Errors wrap domain.ErrUnknownNodeType, domain.ErrKindMismatch or
// domain.ErrInvalidArgs. Pass domain.KindInvalid to accept any kind.
func (r *Registry) Resolve(typeID string, kind domain.NodeKind, args []any) (*Entry, error) {
	e, ok := r.Lookup(typeID)
	if !ok {
		return nil, fmt.Errorf("%q: %w", typeID, domain.ErrUnknownNodeType)
	}
	if kind != domain.KindInvalid && e.Kind != kind {
		return nil, fmt.Errorf("%q is a %s, not a %s: %w", typeID, e.Kind, kind, domain.ErrKindMismatch)
	}
	if err := e.Validate(args); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidArgs, err)
	}
	return e, nil
}

// Entries returns all registered entries sorted by type identifier.
func (r *Registry) Entries() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
