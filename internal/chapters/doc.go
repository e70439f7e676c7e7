// Package chapters turns an ordered list of audio tracks into contiguous
// chapter boundaries.
package chapters
