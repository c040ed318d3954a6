package progress

import (
	"bytes"
	"sync"
	"testing"
)

func TestTrackerConcurrentIncr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := NewTracker(&buf, 20, "translating")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Incr()
		}()
	}
	wg.Wait()
	tr.Close()

	if buf.Len() == 0 {
		t.Fatalf("expected progress output")
	}
}

func TestTrackerCloseEarly(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := NewTracker(&buf, 5, "evaluating")
	tr.Incr()
	tr.Close()
	// A second close and a late increment must be harmless.
	tr.Close()
	tr.Incr()
}

func TestTrackerNil(t *testing.T) {
	t.Parallel()

	var tr *Tracker
	tr.Incr()
	tr.Close()

	NewTracker(nil, 3, "x").Incr()
}
