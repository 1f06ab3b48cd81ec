// Package tracking turns a stream of GPS fixes into live guidance along a
// precomputed route.
//
// This package handles:
// - Precomputing cumulative arc lengths over the route polyline
// - Projecting each fix onto the closest route segment
// - Deriving distance-along-route, progress and lateral offset
// - A two-threshold off-route hysteresis to avoid status flapping
// - Sequencing turn instructions with approach and at-turn events
//
// The Tracker is a single-writer state machine: the caller serializes
// Start, Update and Stop (one fix in flight at a time, in arrival order).
// Events are returned per Update call rather than delivered via callbacks,
// which keeps the tracker free of re-entrancy concerns and trivially
// testable.
package tracking
