// Package services defines shared utilities consumed by the merge pipeline
// stages and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp merge run identifiers and stage names for
//     logging.
//   - Structured error markers plus the Wrap helper so failures can be
//     classified with errors.Is (no input files, probe failure, transcode
//     failure) without losing the underlying cause.
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform across the pipeline.
package services
