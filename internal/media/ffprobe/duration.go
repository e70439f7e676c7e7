package ffprobe

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"chapterize/internal/media/ffmetadata"
	"chapterize/internal/proc"
	"chapterize/internal/services"
)

// DurationCommand builds the ffprobe invocation whose second output line is
// "duration=<seconds>" (the first line is the [FORMAT] header).
func DurationCommand(binary, path string) proc.Command {
	if strings.TrimSpace(binary) == "" {
		binary = "ffprobe"
	}
	return proc.Command{
		Binary: binary,
		Args:   []string{"-v", "error", "-i", path, "-show_entries", "format=duration"},
	}
}

// MeasureDuration returns the track length rounded to the nearest whole
// second. Chapter boundaries are deliberately second-aligned so players do not
// accumulate sub-second drift across many chapters.
func MeasureDuration(ctx context.Context, runner proc.Runner, binary, path string) (time.Duration, error) {
	out, code, err := runner.Output(ctx, DurationCommand(binary, path))
	if err != nil {
		return 0, services.Wrap(services.ErrProbeFailure, "probe", "duration query", path, err)
	}
	if code != 0 {
		return 0, services.Wrap(services.ErrProbeFailure, "probe", "duration query", fmt.Sprintf("%s: ffprobe exited with status %d", path, code), nil)
	}
	seconds, ok := ParseDuration(out)
	if !ok {
		return 0, services.Wrap(services.ErrProbeFailure, "probe", "duration query", fmt.Sprintf("%s: unexpected output %q", path, strings.TrimSpace(out)), nil)
	}
	return time.Duration(math.Round(seconds)) * time.Second, nil
}

// ParseDuration extracts the seconds value from the second line of a
// duration query. It reports false when the output does not have that shape.
func ParseDuration(output string) (float64, bool) {
	lines := strings.Split(output, "\n")
	if len(lines) < 2 {
		return 0, false
	}
	raw, ok := ffmetadata.Lookup("duration", lines[1:2])
	if !ok {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0, false
	}
	return seconds, true
}
