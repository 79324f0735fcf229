/*
Package behavior implements the behavior tree execution engine.

A tree is made of Behavior values. Every Behavior is exactly one of three
kinds, fixed at construction:

  - Leaf: no children, runs a LeafBehavior.
  - Decorator: exactly one child, runs a DecoratorBehavior that decides how
    and whether to tick it.
  - Composite: an ordered, non-empty list of children, runs a
    CompositeBehavior that aggregates their statuses.

# Lifecycle

Each Behavior owns a small state machine:

	Unstarted -> Started -> (Started | Succeeded | Failed | Errored)

Ticking a node that is not Started begins a new run: the policy's Begin
callback fires once, then its Tick callback. While the node keeps returning
Running it stays Started and only Tick fires. The tick returning Success,
Failure or Error ends the run; the next tick begins a fresh one.

Per-run setup (capturing a start frame or time) belongs in Begin, per-tick
work in Tick.

# Ticking

Trees are ticked through a TreeRoot, which pairs the root Behavior with the
shared Blackboard and stamps every tick with a frame number and a time.
Ticking is synchronous and single-threaded: a node that needs to wait
returns Running and expects to be ticked again by the external driver.
*/
package behavior
