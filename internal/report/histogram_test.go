package report

import (
	"strings"
	"testing"
)

func TestHistogramCounts(t *testing.T) {
	t.Parallel()

	var h Histogram
	for _, score := range []int{0, 5, 10, 10, 7} {
		if err := h.Add(score); err != nil {
			t.Fatalf("Add(%d): %v", score, err)
		}
	}

	want := map[int]int{0: 1, 5: 1, 7: 1, 10: 2}
	for score, count := range h.Counts() {
		if count != want[score] {
			t.Fatalf("bin %d: got %d want %d", score, count, want[score])
		}
	}
	if h.Total() != 5 {
		t.Fatalf("total: got %d", h.Total())
	}
}

func TestHistogramRange(t *testing.T) {
	t.Parallel()

	var h Histogram
	for _, score := range []int{-1, 11} {
		if err := h.Add(score); err == nil {
			t.Fatalf("Add(%d): want error", score)
		}
	}
	if h.Total() != 0 {
		t.Fatalf("rejected scores must not count, got total %d", h.Total())
	}
}

func TestHistogramRender(t *testing.T) {
	t.Parallel()

	var h Histogram
	h.Add(3)
	h.Add(3)
	h.Add(9)

	out := h.Render()
	if !strings.Contains(out, "Scores") || !strings.Contains(out, "Count") {
		t.Fatalf("missing axis labels: %q", out)
	}
	// Eleven bins plus the label row.
	if got := strings.Count(strings.TrimRight(out, "\n"), "\n"); got != 11 {
		t.Fatalf("line count: got %d", got)
	}
	if !strings.Contains(out, "##") {
		t.Fatalf("missing bar for bin 3: %q", out)
	}
}
