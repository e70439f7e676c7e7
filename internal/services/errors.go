package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoInputFiles marks a merge whose resolved input set is empty.
	ErrNoInputFiles = errors.New("no input files found")
	// ErrProbeFailure marks a duration or tag query that failed or produced unparsable output.
	ErrProbeFailure = errors.New("probe failure")
	// ErrTranscodeFailure marks a merge or cover ffmpeg pass that exited non-zero.
	ErrTranscodeFailure = errors.New("transcode failure")
	// ErrOutputBusy marks an output path already locked by another merge.
	ErrOutputBusy = errors.New("output in use by another merge")

	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker so callers can classify it with errors.Is. The marker should
// be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a pipeline error to the process exit status used by the CLI.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNoInputFiles), errors.Is(err, ErrValidation), errors.Is(err, ErrConfiguration):
		return 2
	default:
		return 1
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
