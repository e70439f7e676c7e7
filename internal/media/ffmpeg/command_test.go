package ffmpeg

import (
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"
)

func TestConcatFilter(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "[0:0]concat=n=1:v=0:a=1[out]"},
		{3, "[0:0][1:0][2:0]concat=n=3:v=0:a=1[out]"},
	}
	for _, tt := range tests {
		if got := ConcatFilter(tt.n); got != tt.want {
			t.Fatalf("ConcatFilter(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestMergeCommandThreeInputs(t *testing.T) {
	cmd := MergeCommand(MergeOptions{
		Inputs:       []string{"a.mp3", "b.mp3", "c.mp3"},
		Output:       "book.m4b",
		MetadataPath: "m.txt",
	})
	if cmd.Binary != "ffmpeg" {
		t.Fatalf("expected default binary, got %q", cmd.Binary)
	}
	want := []string{
		"-i", "a.mp3",
		"-i", "b.mp3",
		"-i", "c.mp3",
		"-i", "m.txt",
		"-filter_complex", "[0:0][1:0][2:0]concat=n=3:v=0:a=1[out]",
		"-map", "[out]",
		"-map_metadata", "3",
		"-c:a", "aac",
		"-vn",
		"-aac_coder", "fast",
		"book.m4b",
	}
	if !slices.Equal(cmd.Args, want) {
		t.Fatalf("args mismatch\n got: %q\nwant: %q", cmd.Args, want)
	}
}

func TestMergeCommandMetadataIndexEqualsInputCount(t *testing.T) {
	for n := 1; n <= 12; n++ {
		inputs := make([]string, n)
		for i := range inputs {
			inputs[i] = filepath.Join("tracks", strings.Repeat("x", i+1)+".mp3")
		}
		cmd := MergeCommand(MergeOptions{Inputs: inputs, Output: "out.m4b", MetadataPath: "m.txt"})
		idx := slices.Index(cmd.Args, "-map_metadata")
		if idx < 0 || cmd.Args[idx+1] != strconv.Itoa(n) {
			t.Fatalf("n=%d: unexpected map_metadata in %q", n, cmd.Args)
		}
		meta := slices.Index(cmd.Args, "m.txt")
		if meta != 2*n+1 {
			t.Fatalf("n=%d: metadata input at arg %d, want %d", n, meta, 2*n+1)
		}
	}
}

func TestMergeCommandEncoderOverride(t *testing.T) {
	cmd := MergeCommand(MergeOptions{
		Binary:       "/usr/local/bin/ffmpeg",
		Inputs:       []string{"a.mp3"},
		Output:       "book.m4b",
		MetadataPath: "m.txt",
		Encoder:      "libfdk_aac",
		AACCoder:     "twoloop",
		Overwrite:    true,
	})
	if cmd.Binary != "/usr/local/bin/ffmpeg" {
		t.Fatalf("unexpected binary %q", cmd.Binary)
	}
	if cmd.Args[0] != "-y" {
		t.Fatalf("expected -y first when overwriting, got %q", cmd.Args)
	}
	if slices.Contains(cmd.Args, "-aac_coder") {
		t.Fatalf("aac_coder must only accompany the native aac encoder: %q", cmd.Args)
	}
	idx := slices.Index(cmd.Args, "-c:a")
	if idx < 0 || cmd.Args[idx+1] != "libfdk_aac" {
		t.Fatalf("expected encoder override, got %q", cmd.Args)
	}
}

func TestCoverCommand(t *testing.T) {
	cmd := CoverCommand("", "art/cover.jpg", "/books/dune.m4b")
	want := []string{
		"-y",
		"-i", "/books/dune.m4b",
		"-i", "art/cover.jpg",
		"-map", "0",
		"-map", "1",
		"-c", "copy",
		"-dn",
		"-disposition:v:0", "attached_pic",
		"/books/cover-dune.m4b",
	}
	if cmd.Binary != "ffmpeg" || !slices.Equal(cmd.Args, want) {
		t.Fatalf("unexpected cover command %s", cmd)
	}
}

func TestCoverPath(t *testing.T) {
	tests := map[string]string{
		"book.m4b":            "cover-book.m4b",
		"/books/dune.m4b":     "/books/cover-dune.m4b",
		"out/nested/long.m4b": "out/nested/cover-long.m4b",
	}
	for in, want := range tests {
		if got := CoverPath(in); got != want {
			t.Fatalf("CoverPath(%q) = %q, want %q", in, got, want)
		}
	}
}
