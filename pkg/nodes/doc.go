// Package nodes provides the built-in node types and registers them under
// stable identifiers.
//
// Leaves: constant, wait_frames, wait_time, has_value, set_value, condition.
// Decorators: inverter, succeeder, failer, repeat, recover.
// Composites: sequence, selector, parallel.
//
// Every type is usable directly as a value, or through a registry populated
// by RegisterDefaults for builders and descriptor files.
package nodes
