// Package builder assembles behavior trees.
//
// A TreeBuilder turns a linear sequence of Add and Complete calls into a
// validated tree. Every Add appends a NodeBuilder record to a flat arena
// and opens it; Complete closes the most recently opened node. The first
// node added is the root. Build then materializes the records bottom-up:
// children are constructed before their parent so every parent receives
// fully built children.
//
//	root, err := builder.New(reg).
//	    AddComposite("sequence").
//	        AddLeaf("has_value", "target").Complete().
//	        AddDecorator("inverter").
//	            AddLeaf("has_value", "threat").Complete().
//	        Complete().
//	    Complete().
//	    Build()
//
// Errors are sticky: the first invalid call is recorded, later calls are
// ignored, and Build reports it. Err exposes it early.
//
// Wrapper offers the same materialization for trees described recursively,
// and FromDescriptor replays a persisted domain.TreeDescriptor through a
// TreeBuilder.
package builder
