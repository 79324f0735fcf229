/*
Package domain contains the core domain models of the behavior tree runtime.

It defines the vocabulary shared by every other package: the tick outcome
(Status), the node taxonomy (NodeKind), the per-node lifecycle
(LifecycleState), the persisted tree layout (TreeDescriptor) and the
structural build errors. This package is kept pure and free of external
dependencies like I/O or persistence.

# Key Entities

  - Status: the 4-valued outcome of a tick (Success, Failure, Running, Error).
  - NodeKind: Leaf, Decorator or Composite.
  - LifecycleState: where a node is inside its current run.
  - TreeDescriptor: a flat array of node records plus a root index.
  - BuildError: a structural authoring error detected while assembling a tree.
  - LifecycleHooks: observability callbacks fired by the engine.
*/
package domain
