package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapKeepsMarkerAndCause(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrTranscodeFailure, "merge", "run ffmpeg", "", cause)
	if !errors.Is(err, ErrTranscodeFailure) {
		t.Fatalf("expected transcode marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected underlying cause to be preserved, got %v", err)
	}
	if !strings.Contains(err.Error(), "merge: run ffmpeg") {
		t.Fatalf("expected stage detail in message, got %q", err.Error())
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := Wrap(nil, " ", "", "", nil)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{Wrap(ErrNoInputFiles, "resolve", "", "", nil), 2},
		{Wrap(ErrConfiguration, "config", "", "", nil), 2},
		{Wrap(ErrProbeFailure, "plan", "", "", nil), 1},
		{errors.New("boom"), 1},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Fatalf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
