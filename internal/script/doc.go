// Package script defines the narration data model: segments with timing and
// delivery metadata, and the ordered script that owns them. The types carry
// no behavior beyond aggregation and invariant checks; all timing logic lives
// in the timing package.
package script
