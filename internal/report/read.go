package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// ReadScores reads back a report CSV and returns the score column, in row
// order. The header must match Columns exactly.
func ReadScores(r io.Reader) ([]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("report: read header: %w", err)
	}
	if !slices.Equal(header, Columns) {
		return nil, fmt.Errorf("report: unexpected header %q", header)
	}

	scoreIdx := slices.Index(Columns, "score")

	var out []int
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("report: read row: %w", err)
		}

		score, err := strconv.Atoi(row[scoreIdx])
		if err != nil {
			return nil, fmt.Errorf("report: row %d: parse score: %w", len(out)+1, err)
		}
		out = append(out, score)
	}
	return out, nil
}
