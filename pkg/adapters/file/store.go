package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zorpastaman/behaviortree/pkg/domain"
)

// Store implements ports.DescriptorStore using the local filesystem.
// Descriptors are written as YAML files named after the tree; JSON files
// placed in the directory by hand are read too.
type Store struct {
	BasePath string
}

// NewStore creates a new Store with the given base path.
// If basePath is empty, it defaults to ".behaviortree/trees".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".behaviortree", "trees")
	}
	return &Store{BasePath: basePath}
}

// Save persists the descriptor to <name>.yaml.
func (s *Store) Save(ctx context.Context, name string, desc *domain.TreeDescriptor) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if desc == nil {
		return fmt.Errorf("save %s: descriptor is nil", name)
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure tree directory: %w", err)
	}

	// Drop a stale JSON copy so Load stays unambiguous.
	_ = os.Remove(filepath.Join(s.BasePath, name+".json"))
	return SaveFile(filepath.Join(s.BasePath, name+".yaml"), desc)
}

// Load reads <name>.yaml, <name>.yml or <name>.json, in that order.
func (s *Store) Load(ctx context.Context, name string) (*domain.TreeDescriptor, error) {
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}

	for _, ext := range []string{".yaml", ".yml", ".json"} {
		path := filepath.Join(s.BasePath, name+ext)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return LoadFile(path)
	}
	return nil, domain.ErrTreeNotFound
}

// Delete removes every file stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		err := os.Remove(filepath.Join(s.BasePath, name+ext))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to delete tree file: %w", err)
		}
	}
	return nil
}

// List returns the names of the descriptor files in the directory, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read tree directory: %w", err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		switch strings.ToLower(ext) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
