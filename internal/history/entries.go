package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the terminal state of a merge.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Entry is one recorded merge.
type Entry struct {
	ID              string
	Pattern         string
	Output          string
	InputCount      int
	ChapterCount    int
	DurationSeconds float64
	SizeBytes       int64
	CoverApplied    bool
	Status          Status
	Error           string
	StartedAt       time.Time
	FinishedAt      time.Time
}

// Elapsed returns how long the merge ran.
func (e Entry) Elapsed() time.Duration {
	if e.FinishedAt.Before(e.StartedAt) {
		return 0
	}
	return e.FinishedAt.Sub(e.StartedAt)
}

// timeLayout is fixed width so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Record inserts or replaces the entry keyed by its ID.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if s == nil || s.db == nil {
		return errors.New("history store not open")
	}
	if strings.TrimSpace(entry.ID) == "" {
		return errors.New("history entry requires an id")
	}
	if strings.TrimSpace(entry.Output) == "" {
		return errors.New("history entry requires an output path")
	}
	if entry.Status == "" {
		entry.Status = StatusCompleted
	}
	if entry.FinishedAt.IsZero() {
		entry.FinishedAt = time.Now()
	}
	if entry.StartedAt.IsZero() {
		entry.StartedAt = entry.FinishedAt
	}

	_, err := s.exec(ctx, `INSERT OR REPLACE INTO merges (
		id, pattern, output, input_count, chapter_count, duration_seconds,
		size_bytes, cover_applied, status, error, started_at, finished_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Pattern,
		entry.Output,
		entry.InputCount,
		entry.ChapterCount,
		entry.DurationSeconds,
		entry.SizeBytes,
		boolToInt(entry.CoverApplied),
		string(entry.Status),
		entry.Error,
		entry.StartedAt.UTC().Format(timeLayout),
		entry.FinishedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("record merge %s: %w", entry.ID, err)
	}
	return nil
}

// List returns up to limit entries, most recent first. A limit of zero or
// less returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("history store not open")
	}
	query := `SELECT id, pattern, output, input_count, chapter_count, duration_seconds,
		size_bytes, cover_applied, status, error, started_at, finished_at
		FROM merges ORDER BY finished_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list merges: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate merges: %w", err)
	}
	return entries, nil
}

// Clear removes every entry and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, errors.New("history store not open")
	}
	res, err := s.exec(ctx, "DELETE FROM merges")
	if err != nil {
		return 0, fmt.Errorf("clear merges: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear merges: %w", err)
	}
	return removed, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		entry    Entry
		status   string
		cover    int
		started  string
		finished string
	)
	if err := rows.Scan(
		&entry.ID,
		&entry.Pattern,
		&entry.Output,
		&entry.InputCount,
		&entry.ChapterCount,
		&entry.DurationSeconds,
		&entry.SizeBytes,
		&cover,
		&status,
		&entry.Error,
		&started,
		&finished,
	); err != nil {
		return Entry{}, fmt.Errorf("scan merge: %w", err)
	}
	entry.Status = Status(status)
	entry.CoverApplied = cover != 0
	entry.StartedAt = parseTime(started)
	entry.FinishedAt = parseTime(finished)
	return entry, nil
}

func parseTime(value string) time.Time {
	parsed, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
