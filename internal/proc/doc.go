// Package proc runs external tools for the merge pipeline.
//
// Commands are described as a binary plus an argv slice and are never passed
// through a shell; Command.String renders a shell-quoted form purely for logs
// and dry runs. Runner is the seam the probe and merge stages depend on so
// tests can script tool output and count invocations.
package proc
