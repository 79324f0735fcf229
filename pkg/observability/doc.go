/*
Package observability provides lifecycle hooks for monitoring running trees.

Metrics records Prometheus counters and run durations per node type,
LogHooks reports node events through slog, and Combine fans one event out
to several hook sets so both can be attached to the same TreeRoot.
*/
package observability
