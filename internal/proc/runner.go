package proc

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"chapterize/internal/logging"
)

// waitDelay bounds how long Wait blocks on inherited pipes after the process
// is killed on cancellation.
var waitDelay = 5 * time.Second

// LineSink receives one line of combined tool output at a time.
type LineSink func(line string)

// Runner executes external commands.
type Runner interface {
	// Run starts the command, delivers every line of combined stdout/stderr to
	// sink, and returns the exit code once the process has exited and all
	// output has been delivered. A non-zero exit is not an error.
	Run(ctx context.Context, cmd Command, sink LineSink) (int, error)
	// Output runs the command and returns its stdout.
	Output(ctx context.Context, cmd Command) (string, int, error)
}

// Exec runs commands with os/exec.
type Exec struct {
	logger *slog.Logger
}

// NewExec constructs the default runner.
func NewExec(logger *slog.Logger) *Exec {
	return &Exec{logger: logging.NewComponentLogger(logger, "proc")}
}

// Run implements Runner.
func (e *Exec) Run(ctx context.Context, cmd Command, sink LineSink) (int, error) {
	e.logStart(cmd)

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...)
	c.WaitDelay = waitDelay
	reader, writer := io.Pipe()
	c.Stdout = writer
	c.Stderr = writer

	if err := c.Start(); err != nil {
		_ = writer.Close()
		_ = reader.Close()
		return -1, fmt.Errorf("start %s: %w", cmd.Binary, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(reader)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		scanner.Split(ScanStatusLines)
		for scanner.Scan() {
			line := scanner.Text()
			if sink != nil && strings.TrimSpace(line) != "" {
				sink(line)
			}
		}
		// Drain so the writer side never blocks if the scanner gave up early.
		_, _ = io.Copy(io.Discard, reader)
	}()

	waitErr := c.Wait()
	_ = writer.Close()
	<-done

	return exitStatus(ctx, cmd, waitErr)
}

// Output implements Runner.
func (e *Exec) Output(ctx context.Context, cmd Command) (string, int, error) {
	e.logStart(cmd)

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...)
	c.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	code, err := exitStatus(ctx, cmd, c.Run())
	if err == nil && code != 0 && e.logger != nil {
		e.logger.Debug("command exited non-zero",
			logging.String("binary", cmd.Binary),
			logging.Int("exit_code", code),
			logging.String("stderr", strings.TrimSpace(stderr.String())),
		)
	}
	return stdout.String(), code, err
}

func (e *Exec) logStart(cmd Command) {
	if e.logger != nil {
		e.logger.Debug("executing command", logging.String("command", cmd.String()))
	}
}

func exitStatus(ctx context.Context, cmd Command, err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, fmt.Errorf("%s interrupted: %w", cmd.Binary, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("run %s: %w", cmd.Binary, err)
}

// ScanStatusLines is a bufio.SplitFunc that breaks on '\n' and on bare '\r',
// which ffmpeg uses to redraw its status line in place.
func ScanStatusLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		advance = i + 1
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			advance++
		} else if data[i] == '\r' && i+1 == len(data) && !atEOF {
			// Need one more byte to tell "\r\n" from a bare "\r".
			return 0, nil, nil
		}
		return advance, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
