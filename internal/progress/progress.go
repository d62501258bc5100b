// Package progress implements a throttled, terminal-only scan progress
// reporter: a background ticker that samples internal/scan.Stats and
// writes a single overwritten status line to stderr, staying silent
// entirely when output is not a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/jvanrhyn/diskwalk/internal/scan"
	"github.com/jvanrhyn/diskwalk/internal/sizefmt"
)

// DefaultInterval is the throttle period between status line updates.
const DefaultInterval = 100 * time.Millisecond

// maxPathWidth is the longest current-path fragment shown before it is
// truncated to its first and last segments.
const maxPathWidth = 30

// Reporter polls a *scan.Stats on a fixed interval and writes a single
// status line, carriage-return terminated so each update overwrites the
// last. It is a no-op when out is not a terminal.
type Reporter struct {
	out      io.Writer
	interval time.Duration
	isTerm   bool

	mu      sync.Mutex
	stop    chan struct{}
	stopped bool
}

// NewReporter builds a Reporter writing to out. isTerminal is evaluated
// via go-isatty when out is an *os.File; other writers are treated as
// non-terminal (used by tests to capture output unconditionally via
// ForceEnable).
func NewReporter(out io.Writer, interval time.Duration) *Reporter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	isTerm := false
	if f, ok := out.(*os.File); ok {
		isTerm = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Reporter{out: out, interval: interval, isTerm: isTerm, stop: make(chan struct{})}
}

// ForceEnable overrides the terminal detection, used by tests that want
// deterministic output regardless of the test runner's stdio.
func (r *Reporter) ForceEnable() *Reporter {
	r.isTerm = true
	return r
}

// Start launches the polling goroutine. Stop releases it; calling Stop
// again is a no-op.
func (r *Reporter) Start(stats *scan.Stats) {
	if !r.isTerm {
		return
	}
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.writeLine(stats)
			case <-r.stop:
				return
			}
		}
	}()
}

// Stop halts polling and clears the status line.
func (r *Reporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.stopped = true
	close(r.stop)
	if r.isTerm {
		fmt.Fprint(r.out, "\r"+strings.Repeat(" ", 80)+"\r")
	}
}

func (r *Reporter) writeLine(stats *scan.Stats) {
	line := fmt.Sprintf("\rscanning: %d items, %s, %d dirs  %s",
		stats.ItemsScanned(),
		sizefmt.Format(stats.BytesScanned(), sizefmt.Binary),
		stats.DirsScanned(),
		truncatePath(stats.CurrentPath()),
	)
	fmt.Fprint(r.out, padTo(line, 90))
}

// truncatePath keeps a long path readable on a single status line by
// showing its head and tail, joined by an ellipsis.
func truncatePath(p string) string {
	if len(p) <= maxPathWidth {
		return p
	}
	half := (maxPathWidth - 3) / 2
	return p[:half] + "..." + p[len(p)-half:]
}

func padTo(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
