// Command chapterize merges a directory of audio tracks into one chapterized
// audiobook (.m4b) using ffprobe and ffmpeg.
//
// Usage:
//
//	chapterize merge book.m4b './tracks/*.mp3' [--cover cover.jpg] [--encoder aac]
//	chapterize plan './tracks/*.mp3'
//	chapterize history [--limit 20] | chapterize history clear
//	chapterize check
//	chapterize config init|validate
//
// Tracks are ordered naturally ("2.mp3" before "10.mp3") and each becomes one
// chapter titled from its title tag, or "Chapter N" when it has none.
package main
