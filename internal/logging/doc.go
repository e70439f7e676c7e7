// Package logging assembles structured slog loggers and formatting helpers used
// across chapterize.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with the merge run id and stage. The package also provides a no-op
// logger for tests and a progress sampler that keeps ffmpeg progress from
// flooding the log.
package logging
