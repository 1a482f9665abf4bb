// Package cli implements the stacklattice command-line interface.
//
// The commands cover assembling routed edge paths into a lattice, searching
// candidate positions for a new block, counting reachable exits, applying
// kind symmetries, serving the HTTP API and managing the local cache. The
// CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - assemble: Build a lattice from an edge path file and render it
//   - candidates: Propose target positions for the next block
//   - exits: Count the unobstructed exits of a block or pipe
//   - rotate, flip: Transform pipe kinds
//   - serve: Run the HTTP API
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs cache and pipeline events.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Wrote 3 artifacts (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
