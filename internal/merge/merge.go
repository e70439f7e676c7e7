package merge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"chapterize/internal/chapters"
	"chapterize/internal/config"
	"chapterize/internal/history"
	"chapterize/internal/inputs"
	"chapterize/internal/logging"
	"chapterize/internal/media/ffmetadata"
	"chapterize/internal/media/ffmpeg"
	"chapterize/internal/media/ffprobe"
	"chapterize/internal/proc"
	"chapterize/internal/services"
)

const (
	// DoneMarker is printed once the merged output exists.
	DoneMarker = "Done"
	// CoverDoneMarker is printed once the cover pass has replaced the output.
	CoverDoneMarker = "Done with cover"
)

// Request describes one merge.
type Request struct {
	// Pattern is the input glob. It is ignored when Inputs is set.
	Pattern string
	// Inputs are pre-resolved tracks, used in the order given.
	Inputs []string
	Output string
	// Cover is an optional still image attached as cover art.
	Cover string
	// Encoder overrides the configured audio encoder.
	Encoder string
	// Overwrite replaces an existing output. The configured default applies
	// when false.
	Overwrite bool
}

// Result summarizes a finished merge.
type Result struct {
	ID           string
	Output       string
	Inputs       []string
	Chapters     []chapters.Chapter
	Duration     time.Duration
	SizeBytes    int64
	CoverApplied bool
	Elapsed      time.Duration
	Progress     ffmpeg.Stats
}

// Recorder persists finished merges.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Option customizes a Merger.
type Option func(*Merger)

// WithRunner replaces the process runner.
func WithRunner(runner proc.Runner) Option {
	return func(m *Merger) {
		if runner != nil {
			m.runner = runner
		}
	}
}

// WithRecorder records every finished merge.
func WithRecorder(recorder Recorder) Option {
	return func(m *Merger) {
		m.recorder = recorder
	}
}

// WithProgressSink receives rendered progress lines. Defaults to stdout.
func WithProgressSink(sink ffmpeg.Sink) Option {
	return func(m *Merger) {
		if sink != nil {
			m.progress = sink
		}
	}
}

// WithStatusWriter receives the completion markers. Defaults to stdout.
func WithStatusWriter(w io.Writer) Option {
	return func(m *Merger) {
		if w != nil {
			m.status = w
		}
	}
}

// Merger runs merges.
type Merger struct {
	cfg      *config.Config
	logger   *slog.Logger
	runner   proc.Runner
	recorder Recorder
	progress ffmpeg.Sink
	status   io.Writer
	now      func() time.Time
}

// New constructs a Merger.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Merger, error) {
	if cfg == nil {
		return nil, errors.New("merge requires configuration")
	}
	logger = logging.NewComponentLogger(logger, "merge")
	m := &Merger{
		cfg:      cfg,
		logger:   logger,
		runner:   proc.NewExec(logger),
		progress: ffmpeg.StdoutSink,
		status:   os.Stdout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Merge runs the full pipeline for req.
func (m *Merger) Merge(ctx context.Context, req Request) (result Result, err error) {
	started := m.now()
	result.ID = uuid.NewString()
	ctx = services.WithMergeID(ctx, result.ID)
	logger := logging.WithContext(ctx, m.logger)

	output := strings.TrimSpace(req.Output)
	if output == "" {
		return result, services.Wrap(services.ErrValidation, "merge", "", "output path is required", nil)
	}
	output = filepath.Clean(output)
	result.Output = output
	overwrite := req.Overwrite || m.cfg.Merge.Overwrite
	if err := m.validateRequest(req, output, overwrite); err != nil {
		return result, err
	}

	if timeout := m.cfg.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	lock, err := acquireOutputLock(m.cfg.Paths.WorkDir, output)
	if err != nil {
		return result, err
	}
	defer func() {
		if releaseErr := lock.release(); releaseErr != nil {
			logger.Debug("release output lock failed", logging.Error(releaseErr))
		}
	}()

	defer func() {
		result.Elapsed = m.now().Sub(started)
		m.record(ctx, logger, req, result, started, err)
	}()

	logger.Info("merge started",
		logging.String("output", output),
		logging.String("pattern", req.Pattern),
		logging.Bool("cover", req.Cover != ""),
	)

	// ResolveInputs
	paths, err := m.resolveInputs(req, output)
	if err != nil {
		return result, err
	}
	result.Inputs = paths

	// PlanChapters
	planCtx := services.WithStage(ctx, "plan")
	prober := chapters.ToolProber{Runner: m.runner, FFprobe: m.cfg.FFprobeBinary(), FFmpeg: m.cfg.FFmpegBinary()}
	tracks, planned, err := chapters.NewPlanner(prober, logging.WithContext(planCtx, m.logger)).Plan(planCtx, paths)
	if err != nil {
		return result, err
	}
	result.Chapters = planned
	result.Duration = chapters.Total(planned)

	// WriteMetadataDoc
	doc := ffmetadata.Build(ffmetadata.AlbumFromTags(tracks[0].Tags), chapters.Entries(planned))
	metadataPath, err := ffmetadata.WriteTemp(m.cfg.Paths.WorkDir, doc)
	if err != nil {
		return result, services.Wrap(services.ErrExternalTool, "metadata", "write document", "", err)
	}
	logger.Debug("metadata document written", logging.String("path", metadataPath))

	// RunMergeCommand
	encoder := strings.TrimSpace(req.Encoder)
	if encoder == "" {
		encoder = m.cfg.FFmpeg.AudioEncoder
	}
	cmd := ffmpeg.MergeCommand(ffmpeg.MergeOptions{
		Binary:       m.cfg.FFmpegBinary(),
		Inputs:       paths,
		Output:       output,
		MetadataPath: metadataPath,
		Encoder:      encoder,
		AACCoder:     m.cfg.FFmpeg.AACCoder,
		Overwrite:    overwrite,
	})
	stats, err := m.runMergePass(services.WithStage(ctx, "merge"), cmd, result.Duration)
	result.Progress = stats
	if err != nil {
		logger.Info("metadata document kept for inspection", logging.String("path", metadataPath))
		return result, err
	}

	// DeleteMetadataDoc
	if err := os.Remove(metadataPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.WarnWithContext(logger, "metadata document cleanup failed", "metadata_cleanup_failed",
			logging.String("path", metadataPath),
			logging.Error(err),
			logging.String(logging.FieldImpact, "a stale metadata document remains in the work directory"),
			logging.String(logging.FieldErrorHint, "delete it manually"),
		)
	}
	m.mark(DoneMarker)

	if cover := strings.TrimSpace(req.Cover); cover != "" {
		if err := m.applyCover(services.WithStage(ctx, "cover"), cover, output); err != nil {
			return result, err
		}
		result.CoverApplied = true
		m.mark(CoverDoneMarker)
	}

	m.summarize(ctx, logger, &result)
	return result, nil
}

func (m *Merger) validateRequest(req Request, output string, overwrite bool) error {
	if info, err := os.Stat(output); err == nil {
		if info.IsDir() {
			return services.Wrap(services.ErrValidation, "merge", "", fmt.Sprintf("output %s is a directory", output), nil)
		}
		if !overwrite {
			return services.Wrap(services.ErrValidation, "merge", "", fmt.Sprintf("output %s already exists (use --overwrite to replace it)", output), nil)
		}
	}
	if cover := strings.TrimSpace(req.Cover); cover != "" {
		info, err := os.Stat(cover)
		if err != nil {
			return services.Wrap(services.ErrValidation, "merge", "cover", cover, err)
		}
		if !info.Mode().IsRegular() {
			return services.Wrap(services.ErrValidation, "merge", "cover", fmt.Sprintf("%s is not a regular file", cover), nil)
		}
	}
	return nil
}

func (m *Merger) resolveInputs(req Request, output string) ([]string, error) {
	paths := append([]string(nil), req.Inputs...)
	if len(paths) == 0 && strings.TrimSpace(req.Pattern) != "" {
		resolved, err := inputs.Resolve(req.Pattern)
		if err != nil {
			return nil, err
		}
		paths = resolved
	}
	paths = inputs.Exclude(paths, output, ffmpeg.CoverPath(output))
	if len(paths) == 0 {
		return nil, services.Wrap(services.ErrNoInputFiles, "resolve", "", req.Pattern, nil)
	}
	return paths, nil
}

func (m *Merger) runMergePass(ctx context.Context, cmd proc.Command, total time.Duration) (ffmpeg.Stats, error) {
	logger := logging.WithContext(ctx, m.logger)
	sampler := logging.NewProgressSampler(float64(m.cfg.Merge.ProgressBucket))
	tracker := ffmpeg.NewTracker(total, m.progress)

	sink := func(line string) {
		report, ok := tracker.Observe(line)
		if !ok {
			return
		}
		if sampler.ShouldLog(float64(report.Percent()), "merge") {
			attrs := []logging.Attr{logging.Int("percent", report.Percent())}
			if report.RemainingKnown {
				attrs = append(attrs, logging.Duration("remaining", report.Remaining))
			}
			logger.Info("merge progress", logging.Args(attrs...)...)
		}
	}

	logger.Info("merge pass started", logging.String("command", cmd.String()), logging.Duration("total", total))
	code, err := m.runner.Run(ctx, cmd, sink)
	stats := tracker.Stats()
	logger.Debug("progress lines",
		logging.Int("reported", stats.Reported),
		logging.Int("skipped", stats.Skipped),
		logging.Int("ignored", stats.Ignored),
	)
	if err != nil {
		return stats, services.Wrap(services.ErrTranscodeFailure, "merge", "ffmpeg", "", err)
	}
	if code != 0 {
		return stats, services.Wrap(services.ErrTranscodeFailure, "merge", "ffmpeg", fmt.Sprintf("exited with status %d", code), nil)
	}
	if stats.Reported == 0 && stats.Skipped > 0 {
		logging.WarnWithContext(logger, "no usable progress lines", "progress_unrecognized",
			logging.Int("skipped", stats.Skipped),
			logging.String(logging.FieldImpact, "progress and ETA were not shown"),
			logging.String(logging.FieldErrorHint, "check the ffmpeg version's status line format"),
		)
	}
	return stats, nil
}

func (m *Merger) applyCover(ctx context.Context, cover, output string) error {
	logger := logging.WithContext(ctx, m.logger)
	cmd := ffmpeg.CoverCommand(m.cfg.FFmpegBinary(), cover, output)
	code, err := m.runner.Run(ctx, cmd, func(line string) {
		logger.Debug("ffmpeg", logging.String("line", line))
	})
	if err != nil {
		return services.Wrap(services.ErrTranscodeFailure, "cover", "ffmpeg", "", err)
	}
	if code != 0 {
		return services.Wrap(services.ErrTranscodeFailure, "cover", "ffmpeg", fmt.Sprintf("exited with status %d", code), nil)
	}

	covered := ffmpeg.CoverPath(output)
	if err := os.Remove(output); err != nil {
		return services.Wrap(services.ErrTranscodeFailure, "cover", "replace output", output, err)
	}
	if err := os.Rename(covered, output); err != nil {
		return services.Wrap(services.ErrTranscodeFailure, "cover", "replace output", covered, err)
	}
	logger.Info("cover attached", logging.String("cover", cover))
	return nil
}

func (m *Merger) summarize(ctx context.Context, logger *slog.Logger, result *Result) {
	if info, err := os.Stat(result.Output); err == nil {
		result.SizeBytes = info.Size()
	}

	inspected, err := ffprobe.Inspect(ctx, m.runner, m.cfg.FFprobeBinary(), result.Output)
	if err != nil {
		logging.WarnWithContext(logger, "output inspection failed", "output_inspect_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "summary uses planned duration"),
			logging.String(logging.FieldErrorHint, "run ffprobe on the output manually"),
		)
	} else {
		if seconds := inspected.DurationSeconds(); seconds > 0 {
			result.Duration = time.Duration(seconds * float64(time.Second))
		}
		if size := inspected.SizeBytes(); size > 0 {
			result.SizeBytes = size
		}
		if got := len(inspected.Chapters); got != len(result.Chapters) {
			logging.WarnWithContext(logger, "output chapter count differs from plan", "chapter_count_mismatch",
				logging.Int("planned", len(result.Chapters)),
				logging.Int("found", got),
				logging.String(logging.FieldImpact, "some chapter markers may be missing"),
			)
		}
	}

	logger.Info("merge complete",
		logging.String(logging.FieldEventType, "merge_complete"),
		logging.String("output", result.Output),
		logging.Int("chapters", len(result.Chapters)),
		logging.Int64("size_bytes", result.SizeBytes),
		logging.Duration("duration", result.Duration),
		logging.Bool("cover", result.CoverApplied),
	)
}

func (m *Merger) record(ctx context.Context, logger *slog.Logger, req Request, result Result, started time.Time, runErr error) {
	if m.recorder == nil {
		return
	}
	entry := history.Entry{
		ID:              result.ID,
		Pattern:         req.Pattern,
		Output:          result.Output,
		InputCount:      len(result.Inputs),
		ChapterCount:    len(result.Chapters),
		DurationSeconds: result.Duration.Seconds(),
		SizeBytes:       result.SizeBytes,
		CoverApplied:    result.CoverApplied,
		Status:          history.StatusCompleted,
		StartedAt:       started,
		FinishedAt:      started.Add(result.Elapsed),
	}
	if runErr != nil {
		entry.Status = history.StatusFailed
		entry.Error = runErr.Error()
	}
	if err := m.recorder.Record(context.WithoutCancel(ctx), entry); err != nil {
		logging.WarnWithContext(logger, "history record failed", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "this merge will not appear in chapterize history"),
		)
	}
}

func (m *Merger) mark(marker string) {
	fmt.Fprintln(m.status, marker)
}
