package main

import (
	"fmt"
	"io"
	"sync"
)

// progressPrinter draws merge progress on w. On a terminal each update
// redraws the current line; otherwise every update gets its own line. Status
// writes end any in-place line first so markers never share it.
// clearLine returns to column 0 and erases the previous redraw, which may be
// longer than the next one.
const clearLine = "\r\x1b[K"

type progressPrinter struct {
	mu      sync.Mutex
	w       io.Writer
	inPlace bool
	pending bool
}

func newProgressPrinter(w io.Writer, inPlace bool) *progressPrinter {
	return &progressPrinter{w: w, inPlace: inPlace}
}

func (p *progressPrinter) Progress(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.inPlace {
		fmt.Fprintln(p.w, line)
		return
	}
	fmt.Fprint(p.w, clearLine+line)
	p.pending = true
}

// Write implements io.Writer for completion markers.
func (p *progressPrinter) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finishLocked()
	return p.w.Write(b)
}

// Finish terminates a pending in-place line.
func (p *progressPrinter) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finishLocked()
}

func (p *progressPrinter) finishLocked() {
	if p.pending {
		fmt.Fprintln(p.w)
		p.pending = false
	}
}
