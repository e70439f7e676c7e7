// Package ffmpeg builds the ffmpeg invocations used to merge tracks and attach
// cover art, and interprets the status lines ffmpeg prints while encoding.
//
// Command builders are pure: they return proc.Command values and never run
// anything. The progress parser is likewise a pure function over one status
// line; Tracker adds the wall clock, a sink, and line counters on top.
package ffmpeg
