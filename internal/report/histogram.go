package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
)

// Histogram counts fidelity scores in 11 integer-width bins covering 0
// through 10 inclusive.
type Histogram struct {
	bins  [11]int
	total int
}

func (h *Histogram) Add(score int) error {
	if h == nil {
		return fmt.Errorf("report: nil histogram")
	}
	if score < 0 || score > 10 {
		return fmt.Errorf("report: score %d outside histogram range [0,10]", score)
	}
	h.bins[score]++
	h.total++
	return nil
}

func (h *Histogram) Counts() [11]int {
	if h == nil {
		return [11]int{}
	}
	return h.bins
}

func (h *Histogram) Total() int {
	if h == nil {
		return 0
	}
	return h.total
}

// Render draws the histogram for a terminal, score bins down the left and
// counts across.
func (h *Histogram) Render() string {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 2, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "Scores\tCount\t")
	for score, count := range h.Counts() {
		fmt.Fprintf(tw, "%d\t%d\t%s\n", score, count, strings.Repeat("#", count))
	}
	tw.Flush()

	return buf.String()
}
