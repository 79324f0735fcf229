package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/zorpastaman/behaviortree/pkg/domain"
)

// Store implements ports.DescriptorStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.TreeDescriptor
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.TreeDescriptor),
	}
}

// NewStoreFrom creates a store seeded with descriptors keyed by their Name.
// This improves DX for tests.
func NewStoreFrom(descs ...*domain.TreeDescriptor) (*Store, error) {
	s := NewStore()
	for _, d := range descs {
		if d == nil || d.Name == "" {
			return nil, fmt.Errorf("descriptor missing name")
		}
		s.data[d.Name] = cloneDescriptor(d)
	}
	return s, nil
}

// Save persists the descriptor in memory.
func (s *Store) Save(ctx context.Context, name string, desc *domain.TreeDescriptor) error {
	if desc == nil {
		return fmt.Errorf("save %s: descriptor is nil", name)
	}
	// Deep copy to ensure isolation, similar to serialization
	copied := cloneDescriptor(desc)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load retrieves the descriptor from memory.
func (s *Store) Load(ctx context.Context, name string) (*domain.TreeDescriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	desc, ok := s.data[name]
	if !ok {
		return nil, domain.ErrTreeNotFound
	}

	// Copy on read so callers can't mutate the stored descriptor by pointer
	return cloneDescriptor(desc), nil
}

// Delete removes the descriptor.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored descriptor names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names) // Deterministic order
	return names, nil
}

func cloneDescriptor(d *domain.TreeDescriptor) *domain.TreeDescriptor {
	out := &domain.TreeDescriptor{
		Name:  d.Name,
		Root:  d.Root,
		Nodes: make([]domain.NodeRecord, len(d.Nodes)),
	}
	for i, rec := range d.Nodes {
		out.Nodes[i] = domain.NodeRecord{
			Type:     rec.Type,
			Args:     append([]any(nil), rec.Args...),
			Children: append([]int(nil), rec.Children...),
		}
	}
	return out
}
