package ffmpeg

import (
	"path/filepath"
	"strconv"
	"strings"

	"chapterize/internal/proc"
)

const (
	// DefaultEncoder is the audio encoder used when none is configured.
	DefaultEncoder = "aac"
	// DefaultAACCoder trades a little quality for a much faster native aac encode.
	DefaultAACCoder = "fast"

	coverPrefix = "cover-"
)

// MergeOptions describes one concatenation pass.
type MergeOptions struct {
	Binary string
	// Inputs are the audio tracks in chapter order.
	Inputs       []string
	Output       string
	MetadataPath string
	Encoder      string
	AACCoder     string
	Overwrite    bool
}

// MergeCommand builds the concatenation command. Each input contributes its
// first stream to the concat filter in declaration order, and container
// metadata is mapped from the metadata document, which is always the input
// right after the last track.
func MergeCommand(opts MergeOptions) proc.Command {
	binary := strings.TrimSpace(opts.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	encoder := strings.TrimSpace(opts.Encoder)
	if encoder == "" {
		encoder = DefaultEncoder
	}
	coder := strings.TrimSpace(opts.AACCoder)
	if coder == "" {
		coder = DefaultAACCoder
	}

	n := len(opts.Inputs)
	args := make([]string, 0, 2*n+16)
	if opts.Overwrite {
		args = append(args, "-y")
	}
	for _, input := range opts.Inputs {
		args = append(args, "-i", input)
	}
	args = append(args,
		"-i", opts.MetadataPath,
		"-filter_complex", ConcatFilter(n),
		"-map", "[out]",
		"-map_metadata", strconv.Itoa(n),
		"-c:a", encoder,
		"-vn",
	)
	if encoder == DefaultEncoder {
		args = append(args, "-aac_coder", coder)
	}
	args = append(args, opts.Output)

	return proc.Command{Binary: binary, Args: args}
}

// ConcatFilter returns the filter graph joining the first stream of n inputs,
// e.g. "[0:0][1:0]concat=n=2:v=0:a=1[out]".
func ConcatFilter(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("[")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(":0]")
	}
	b.WriteString("concat=n=")
	b.WriteString(strconv.Itoa(n))
	b.WriteString(":v=0:a=1[out]")
	return b.String()
}

// CoverCommand builds the second pass that copies every stream of output and
// adds cover as an attached picture. It writes to CoverPath(output) so ffmpeg
// never reads and writes the same file. The transient file is always
// overwritten.
func CoverCommand(binary, cover, output string) proc.Command {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return proc.Command{
		Binary: binary,
		Args: []string{
			"-y",
			"-i", output,
			"-i", cover,
			"-map", "0",
			"-map", "1",
			"-c", "copy",
			"-dn",
			"-disposition:v:0", "attached_pic",
			CoverPath(output),
		},
	}
}

// CoverPath is the transient output of the cover pass: the same directory as
// output with the file name prefixed by "cover-".
func CoverPath(output string) string {
	dir, name := filepath.Split(output)
	return filepath.Join(dir, coverPrefix+name)
}
