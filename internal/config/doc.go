// Package config loads, normalizes, and validates chapterize configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CHAPTERIZE_FFMPEG. The Config type centralizes every knob the merge pipeline
// and CLI need so tool binaries, encoder choices, and scratch directories are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
