// Package progress renders a completion counter for a batch of in-flight
// model calls.
package progress

import (
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Tracker advances a terminal progress bar once per completed unit of work,
// in any completion order. Incr is safe for concurrent use. Close releases
// the display whether or not all units completed.
type Tracker struct {
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func NewTracker(w io.Writer, total int, label string) *Tracker {
	if w == nil {
		w = io.Discard
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
	return &Tracker{bar: bar}
}

// Incr records one completed unit. Failed units count too; the tracker
// reports completions, not successes.
func (t *Tracker) Incr() {
	if t == nil || t.bar == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.bar.Add(1)
}

func (t *Tracker) Close() {
	if t == nil || t.bar == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bar.IsFinished() {
		return
	}
	_ = t.bar.Exit()
}
