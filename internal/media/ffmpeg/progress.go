package ffmpeg

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"chapterize/internal/media/ffmetadata"
)

const (
	// StatusSentinel starts every ffmpeg encoding status line.
	StatusSentinel = "size="
	// BarWidth is the number of cells in the rendered progress bar.
	BarWidth = 25
)

// Report is one interpreted status line.
type Report struct {
	// Fraction is encoded time over total time. It is not clamped and may
	// exceed 1 when the encoder overshoots the probed duration.
	Fraction float64
	// Filled is the number of bar cells to draw, clamped to [0, BarWidth].
	Filled int
	// Remaining is the estimated wall time left, valid when RemainingKnown.
	Remaining      time.Duration
	RemainingKnown bool
}

// Percent returns Fraction as a whole percentage.
func (r Report) Percent() int {
	return int(math.Round(r.Fraction * 100))
}

// String renders the report as a single progress line.
func (r Report) String() string {
	remaining := "unknown"
	if r.RemainingKnown {
		remaining = strconv.FormatInt(int64(r.Remaining/time.Second), 10)
	}
	return fmt.Sprintf("Progress: [%s%s] (%d%%) (%s est remaining)",
		strings.Repeat("=", r.Filled),
		strings.Repeat(" ", BarWidth-r.Filled),
		r.Percent(),
		remaining,
	)
}

// Update interprets one status line against the total known duration and the
// wall time spent encoding so far. Lines that are not status lines, lack a
// time= token, or carry a negative or unparsable time produce no report.
func Update(line string, total, elapsed time.Duration) (Report, bool) {
	if !strings.HasPrefix(line, StatusSentinel) || total <= 0 {
		return Report{}, false
	}
	raw, ok := ffmetadata.Lookup("time", strings.Fields(line))
	if !ok {
		return Report{}, false
	}
	position, ok := ParseTimestamp(raw)
	if !ok {
		return Report{}, false
	}

	fraction := float64(position) / float64(total)
	report := Report{
		Fraction: fraction,
		Filled:   min(max(int(math.Round(fraction*BarWidth)), 0), BarWidth),
	}
	if fraction > 0 {
		spent := elapsed.Seconds()
		remaining := math.Round(spent/fraction - spent)
		report.Remaining = time.Duration(remaining) * time.Second
		report.RemainingKnown = true
	}
	return report, true
}

// ParseTimestamp parses ffmpeg's HH:MM:SS(.ff) position. It reports false for
// malformed values and for negative positions, which ffmpeg prints before the
// first packet is muxed.
func ParseTimestamp(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "-") {
		return 0, false
	}
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, false
	}
	hours, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, false
	}
	total := hours*float64(time.Hour) + minutes*float64(time.Minute) + seconds*float64(time.Second)
	if math.IsNaN(total) || math.IsInf(total, 0) || total < 0 {
		return 0, false
	}
	return time.Duration(total), true
}

// Sink receives rendered progress lines.
type Sink func(line string)

// StdoutSink prints each progress line on its own line to stdout.
func StdoutSink(line string) {
	fmt.Fprintln(os.Stdout, line)
}

// WriterSink prints each progress line to w, one per line.
func WriterSink(w io.Writer) Sink {
	return func(line string) {
		fmt.Fprintln(w, line)
	}
}

// Stats counts the lines a Tracker has seen.
type Stats struct {
	// Reported lines produced a progress report.
	Reported int
	// Skipped lines looked like status lines but carried no usable time.
	Skipped int
	// Ignored lines were not status lines at all.
	Ignored int
}

// Tracker feeds streamed ffmpeg output through Update and forwards rendered
// reports to a sink.
type Tracker struct {
	total time.Duration
	sink  Sink
	start time.Time
	now   func() time.Time

	mu    sync.Mutex
	stats Stats
	last  Report
	seen  bool
}

// NewTracker starts the wall clock for a merge whose output will be total
// long. A nil sink prints to stdout.
func NewTracker(total time.Duration, sink Sink) *Tracker {
	return newTracker(total, sink, time.Now)
}

func newTracker(total time.Duration, sink Sink, now func() time.Time) *Tracker {
	if sink == nil {
		sink = StdoutSink
	}
	return &Tracker{total: total, sink: sink, start: now(), now: now}
}

// Observe handles one line of ffmpeg output.
func (t *Tracker) Observe(line string) (Report, bool) {
	report, ok := Update(line, t.total, t.now().Sub(t.start))

	t.mu.Lock()
	switch {
	case ok:
		t.stats.Reported++
		t.last = report
		t.seen = true
	case strings.HasPrefix(line, StatusSentinel):
		t.stats.Skipped++
	default:
		t.stats.Ignored++
	}
	t.mu.Unlock()

	if ok {
		t.sink(report.String())
	}
	return report, ok
}

// Stats returns the line counters so far.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// Last returns the most recent report, if any.
func (t *Tracker) Last() (Report, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.seen
}
