package chapters

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"chapterize/internal/logging"
	"chapterize/internal/media/ffmetadata"
	"chapterize/internal/media/ffprobe"
	"chapterize/internal/proc"
	"chapterize/internal/services"
)

// Track is one probed input file.
type Track struct {
	Path     string
	Duration time.Duration
	Tags     []string
}

// Chapter is one span of the merged book.
type Chapter struct {
	Path  string
	Start time.Duration
	End   time.Duration
	Title string
}

// Duration returns the chapter length.
func (c Chapter) Duration() time.Duration {
	return c.End - c.Start
}

// Prober measures tracks.
type Prober interface {
	MeasureDuration(ctx context.Context, path string) (time.Duration, error)
	DumpTags(ctx context.Context, path string) ([]string, error)
}

// ToolProber probes tracks with ffprobe and ffmpeg.
type ToolProber struct {
	Runner  proc.Runner
	FFprobe string
	FFmpeg  string
}

// MeasureDuration implements Prober.
func (p ToolProber) MeasureDuration(ctx context.Context, path string) (time.Duration, error) {
	return ffprobe.MeasureDuration(ctx, p.Runner, p.FFprobe, path)
}

// DumpTags implements Prober.
func (p ToolProber) DumpTags(ctx context.Context, path string) ([]string, error) {
	return ffmetadata.DumpTags(ctx, p.Runner, p.FFmpeg, path)
}

// Planner probes tracks in order and folds them into chapters.
type Planner struct {
	prober Prober
	logger *slog.Logger
}

// NewPlanner constructs a planner.
func NewPlanner(prober Prober, logger *slog.Logger) *Planner {
	return &Planner{prober: prober, logger: logging.NewComponentLogger(logger, "planner")}
}

// Plan probes every path in the order given. Paths must already be sorted:
// chapter boundaries follow this order exactly. Any probe failure aborts the
// plan.
func (p *Planner) Plan(ctx context.Context, paths []string) ([]Track, []Chapter, error) {
	if len(paths) == 0 {
		return nil, nil, services.Wrap(services.ErrNoInputFiles, "plan", "", "", nil)
	}

	tracks := make([]Track, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		duration, err := p.prober.MeasureDuration(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		tags, err := p.prober.DumpTags(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		tracks = append(tracks, Track{Path: path, Duration: duration, Tags: tags})
		p.logger.Debug("track probed",
			logging.String("path", path),
			logging.Duration("duration", duration),
			logging.Int("tag_lines", len(tags)),
		)
	}

	chapters := Fold(tracks)
	p.logger.Info("chapters planned",
		logging.Int("chapters", len(chapters)),
		logging.Duration("total", Total(chapters)),
	)
	return tracks, chapters, nil
}

// Fold accumulates the running clock over tracks. The first chapter starts at
// zero and every later chapter starts where the previous one ended.
func Fold(tracks []Track) []Chapter {
	chapters := make([]Chapter, 0, len(tracks))
	var clock time.Duration
	for i, track := range tracks {
		end := clock + track.Duration
		chapters = append(chapters, Chapter{
			Path:  track.Path,
			Start: clock,
			End:   end,
			Title: Title(track.Tags, i),
		})
		clock = end
	}
	return chapters
}

// Title resolves a chapter title from the track's title tag, falling back to
// "Chapter N" with N counted from one.
func Title(tags []string, index int) string {
	if title, ok := ffmetadata.LookupTag("title", tags); ok {
		return title
	}
	return "Chapter " + strconv.Itoa(index+1)
}

// Total returns the end of the last chapter.
func Total(chapters []Chapter) time.Duration {
	if len(chapters) == 0 {
		return 0
	}
	return chapters[len(chapters)-1].End
}

// Entries converts chapters to metadata document entries.
func Entries(chapters []Chapter) []ffmetadata.Entry {
	entries := make([]ffmetadata.Entry, 0, len(chapters))
	for _, chapter := range chapters {
		entries = append(entries, ffmetadata.Entry{Start: chapter.Start, End: chapter.End, Title: chapter.Title})
	}
	return entries
}
