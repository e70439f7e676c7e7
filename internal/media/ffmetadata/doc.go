// Package ffmetadata reads and writes ffmpeg's FFMETADATA1 text format.
//
// It covers the three places chapterize touches that format: dumping a
// track's embedded tags with `ffmpeg -f ffmetadata`, looking up `key=value`
// lines in that dump (and in other ffmpeg/ffprobe text output), and rendering
// the album plus chapter document fed to the merge pass.
package ffmetadata
