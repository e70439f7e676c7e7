// Package ffprobe wraps the ffprobe queries the merge pipeline depends on.
//
// Key types:
//   - Result: parsed JSON inspection output containing streams, chapters and
//     format metadata
//
// Primary entry points:
//   - MeasureDuration: runs the plain-text duration query for one input track
//     and returns its length rounded to whole seconds
//   - Inspect: runs a JSON inspection, used to verify a finished audiobook
//
// Both run through a proc.Runner so tests can script ffprobe output.
package ffprobe
