// Package merge sequences a complete chapterize run.
//
// A merge walks a fixed pipeline: resolve inputs, probe and plan chapters,
// write the metadata document, run the concatenation pass while streaming
// progress, delete the metadata document, and optionally run the cover pass
// and swap its output into place. Every stage aborts the run on failure and
// nothing is retried. Artifacts of a failed ffmpeg pass are left on disk for
// inspection.
//
// Runs are keyed by a generated merge id that travels in the context so every
// log line of one run can be correlated. Two runs targeting the same output
// are serialized by a lock file in the work directory; the second fails fast
// with services.ErrOutputBusy.
package merge
