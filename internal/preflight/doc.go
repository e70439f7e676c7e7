// Package preflight provides readiness checks for the external tools and
// filesystem paths chapterize depends on.
//
// The CLI "chapterize check" command prints every result; "chapterize merge"
// runs the same checks first and refuses to start when one fails, so a
// missing ffmpeg is reported before any probing begins.
package preflight
