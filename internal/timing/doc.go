// Package timing implements the script timing and segmentation engine.
//
// The engine is a pure transformation over a script: it recomputes segment
// durations from character-based reading-speed presets, splits segments that
// exceed the per-segment ceiling at sentence or phrase boundaries, records
// synthesis pauses as out-of-band marks, detects emphasis words and emotion
// with fixed ordered pattern tables, and compresses the whole script
// uniformly when the total duration exceeds the configured ceiling.
//
// Stage order matters: splitting depends on the recomputed durations, pause
// accounting depends on the split boundaries, and the compression factor
// depends on the grand total. Process must therefore never be parallelized
// internally, though it is safe to call concurrently on independent scripts.
package timing
