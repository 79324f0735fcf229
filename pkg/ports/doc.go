/*
Package ports defines the driven ports (interfaces) of the behavior tree runtime.

These interfaces decouple the engine from external implementations, allowing
trees to run against any data store and to be persisted in any backend.

# Key Interfaces

  - Blackboard: the shared key-value store nodes read and write during a tick.
  - DescriptorStore: persists and loads TreeDescriptor values by name.
*/
package ports
