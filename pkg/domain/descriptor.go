package domain

// NoChild marks an unset decorator child slot in a NodeRecord.
const NoChild = -1

// NodeRecord is the persisted shape of one node.
type NodeRecord struct {
	// Type is the registered node type identifier.
	Type string `json:"type" yaml:"type" mapstructure:"type"`
	// Args are the opaque construction arguments, in positional order.
	Args []any `json:"args,omitempty" yaml:"args,omitempty" mapstructure:"args"`
	// Children are indices into TreeDescriptor.Nodes. NoChild marks an unset slot.
	Children []int `json:"children,omitempty" yaml:"children,omitempty" mapstructure:"children"`
}

// TreeDescriptor is the persisted shape of a whole tree: a flat array of
// records plus the index of the root record.
type TreeDescriptor struct {
	Name  string       `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Root  int          `json:"root" yaml:"root" mapstructure:"root"`
	Nodes []NodeRecord `json:"nodes" yaml:"nodes" mapstructure:"nodes"`
}
