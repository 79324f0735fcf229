package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zorpastaman/behaviortree/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format is a descriptor file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the format from the file extension: ".json" is JSON,
// everything else is YAML.
func FormatFor(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// NodeSpec is the nested authoring form of a node. Files may describe a
// tree with a "tree" key holding a NodeSpec instead of a flat "nodes" list.
type NodeSpec struct {
	Type     string     `yaml:"type" json:"type"`
	Args     []any      `yaml:"args,omitempty" json:"args,omitempty"`
	Children []NodeSpec `yaml:"children,omitempty" json:"children,omitempty"`
}

// document is the on-disk shape: either flat (root + nodes) or nested (tree).
type document struct {
	Name  string              `yaml:"name,omitempty" json:"name,omitempty"`
	Root  int                 `yaml:"root" json:"root"`
	Nodes []domain.NodeRecord `yaml:"nodes,omitempty" json:"nodes,omitempty"`
	Tree  *NodeSpec           `yaml:"tree,omitempty" json:"tree,omitempty"`
}

// Decode parses a descriptor in the given format.
func Decode(data []byte, format Format) (*domain.TreeDescriptor, error) {
	var doc document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse json descriptor: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse yaml descriptor: %w", err)
		}
	}

	switch {
	case doc.Tree != nil && len(doc.Nodes) > 0:
		return nil, fmt.Errorf("%w: both tree and nodes are set", domain.ErrInvalidDescriptor)
	case doc.Tree != nil:
		desc := Flatten(*doc.Tree)
		desc.Name = doc.Name
		return desc, nil
	default:
		return &domain.TreeDescriptor{Name: doc.Name, Root: doc.Root, Nodes: doc.Nodes}, nil
	}
}

// Encode serializes desc in the flat form.
func Encode(desc *domain.TreeDescriptor, format Format) ([]byte, error) {
	doc := document{Name: desc.Name, Root: desc.Root, Nodes: desc.Nodes}
	if format == FormatJSON {
		return json.MarshalIndent(doc, "", "  ")
	}
	return yaml.Marshal(doc)
}

// Flatten converts a nested spec to a descriptor with records in pre-order.
func Flatten(spec NodeSpec) *domain.TreeDescriptor {
	desc := &domain.TreeDescriptor{}
	var add func(s NodeSpec) int
	add = func(s NodeSpec) int {
		i := len(desc.Nodes)
		desc.Nodes = append(desc.Nodes, domain.NodeRecord{Type: s.Type, Args: s.Args})
		var children []int
		for _, c := range s.Children {
			children = append(children, add(c))
		}
		desc.Nodes[i].Children = children
		return i
	}
	add(spec)
	return desc
}

// LoadFile reads a descriptor file. A missing Name defaults to the file
// name without extension.
func LoadFile(path string) (*domain.TreeDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor file: %w", err)
	}
	desc, err := Decode(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if desc.Name == "" {
		desc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return desc, nil
}

// SaveFile writes desc to path in the format its extension selects.
func SaveFile(path string, desc *domain.TreeDescriptor) error {
	data, err := Encode(desc, FormatFor(path))
	if err != nil {
		return fmt.Errorf("failed to encode descriptor: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write descriptor file: %w", err)
	}
	return nil
}
