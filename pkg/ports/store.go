package ports

import (
	"context"

	"github.com/zorpastaman/behaviortree/pkg/domain"
)

// DescriptorStore persists tree descriptors by name.
// This lets tooling author a tree once and have any process rebuild it.
type DescriptorStore interface {
	// Save persists desc under name, replacing any previous descriptor.
	Save(ctx context.Context, name string, desc *domain.TreeDescriptor) error

	// Load retrieves the descriptor stored under name.
	// Returns domain.ErrTreeNotFound if it does not exist.
	Load(ctx context.Context, name string) (*domain.TreeDescriptor, error)

	// Delete removes the descriptor stored under name.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored descriptors.
	List(ctx context.Context) ([]string, error)
}
