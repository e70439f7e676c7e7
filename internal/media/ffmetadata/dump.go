package ffmetadata

import (
	"context"
	"fmt"
	"strings"

	"chapterize/internal/proc"
	"chapterize/internal/services"
)

// DumpCommand builds the quiet ffmpeg invocation that writes a track's tags
// as an ffmetadata document on stdout.
func DumpCommand(binary, path string) proc.Command {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return proc.Command{
		Binary: binary,
		Args:   []string{"-i", path, "-f", "ffmetadata", "-v", "quiet", "-"},
	}
}

// DumpTags returns the raw ffmetadata lines embedded in path.
func DumpTags(ctx context.Context, runner proc.Runner, binary, path string) ([]string, error) {
	out, code, err := runner.Output(ctx, DumpCommand(binary, path))
	if err != nil {
		return nil, services.Wrap(services.ErrProbeFailure, "probe", "tag dump", path, err)
	}
	if code != 0 {
		return nil, services.Wrap(services.ErrProbeFailure, "probe", "tag dump", fmt.Sprintf("%s: ffmpeg exited with status %d", path, code), nil)
	}
	return SplitLines(out), nil
}
