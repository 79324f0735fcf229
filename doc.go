/*
Package behaviortree is a behavior-tree runtime for game AI and other
frame-driven agents.

A tree of nodes is ticked once per frame. Every node returns a Status
(Success, Failure, Running or Error) that propagates up through decorators
and composites. The host owns the loop: it ticks the tree and reads the
shared Blackboard, and the runtime owns the node lifecycle.

# Concept

Trees are assembled from a linear stream of "add node" and "complete node"
calls. The builder records each call, validates the structure as it goes
and materializes the whole tree bottom-up in a single Build step, so a tree
either builds completely or not at all.

	Leaf       owns no children (actions and conditions)
	Decorator  owns exactly one child (inverter, repeat, ...)
	Composite  owns an ordered, non-empty list (sequence, selector, parallel)

Each node has a lifecycle: a run begins on the first tick after the node
was unstarted or finished, stays Started while the node returns Running and
ends on Success, Failure or Error. Error is never folded into Failure: it
reports that a node could not be evaluated, typically because a blackboard
value was missing.

# Key Features

  - Sticky construction errors: the first structural mistake is reported
    with the offending node index and every later call is ignored.
  - Registry of node types: descriptors, files and the CLI build trees from
    stable type identifiers and positional arguments.
  - Persisted descriptors: trees round-trip through YAML/JSON files, memory
    or Redis stores.
  - Observability: lifecycle hooks feed slog and Prometheus.

# Usage

	rt := behaviortree.New()

	b := rt.NewBuilder().
		AddComposite("sequence").
		AddLeaf("has_value", "target").Complete().
		AddLeaf("wait_frames", 3).Complete().
		Complete()

	tree, err := rt.NewTree(b, nil)
	if err != nil {
		log.Fatal(err)
	}

	for tree.Tick() == domain.StatusRunning {
		// one frame of the host loop
	}
*/
package behaviortree
