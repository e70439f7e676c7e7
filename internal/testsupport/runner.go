package testsupport

import (
	"context"
	"sync"

	"chapterize/internal/proc"
)

// FakeRunner is a scriptable proc.Runner that records every invocation.
type FakeRunner struct {
	// OutputFunc answers Output calls. A nil func returns empty output and exit 0.
	OutputFunc func(cmd proc.Command) (string, int, error)
	// RunFunc answers Run calls. A nil func delivers nothing and returns exit 0.
	RunFunc func(cmd proc.Command, sink proc.LineSink) (int, error)

	mu    sync.Mutex
	calls []proc.Command
}

// Run implements proc.Runner.
func (f *FakeRunner) Run(_ context.Context, cmd proc.Command, sink proc.LineSink) (int, error) {
	f.record(cmd)
	if f.RunFunc == nil {
		return 0, nil
	}
	return f.RunFunc(cmd, sink)
}

// Output implements proc.Runner.
func (f *FakeRunner) Output(_ context.Context, cmd proc.Command) (string, int, error) {
	f.record(cmd)
	if f.OutputFunc == nil {
		return "", 0, nil
	}
	return f.OutputFunc(cmd)
}

// Calls returns a copy of the recorded invocations in order.
func (f *FakeRunner) Calls() []proc.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]proc.Command(nil), f.calls...)
}

// CallCount returns the number of recorded invocations.
func (f *FakeRunner) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *FakeRunner) record(cmd proc.Command) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmd)
}
