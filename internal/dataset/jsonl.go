package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	defaultJSONLPath = "data/wmdp_chem.jsonl"

	// PathEnv overrides the JSONL file location.
	PathEnv = "FIDEVAL_DATASET_PATH"
)

// JSONLLoader reads question records from a local JSONL file, one object
// per line. When the file is missing it falls back to a small built-in
// sample so the pipeline can be exercised without the real dataset.
type JSONLLoader struct {
	Path       string
	SampleSize int
}

type jsonlRow struct {
	ID       string   `json:"id,omitempty"`
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   any      `json:"answer"`
}

func (l *JSONLLoader) Name() string { return "jsonl" }

func (l *JSONLLoader) Load(ctx context.Context) ([]Record, error) {
	if l == nil {
		return nil, errors.New("dataset: nil loader")
	}
	if ctx == nil {
		return nil, errors.New("dataset: nil context")
	}

	path := strings.TrimSpace(os.Getenv(PathEnv))
	if path == "" {
		path = strings.TrimSpace(l.Path)
	}
	if path == "" {
		path = defaultJSONLPath
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return takeFirstN(sampleRecords(), l.SampleSize), nil
		}
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer f.Close()

	rows, err := decodeJSONLStream(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("dataset: load %q: %w", path, err)
	}

	out := make([]Record, 0, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		question := strings.TrimSpace(row.Question)
		if question == "" {
			continue
		}
		choices := compactStrings(row.Choices)
		if len(choices) == 0 {
			continue
		}

		answer, err := answerIndex(row.Answer, choices)
		if err != nil {
			return nil, fmt.Errorf("dataset: %q line %d: %w", path, i+1, err)
		}

		id := strings.TrimSpace(row.ID)
		if id == "" {
			id = fmt.Sprintf("wmdp-chem-%d", i+1)
		}

		out = append(out, Record{
			ID:       id,
			Question: question,
			Choices:  choices,
			Answer:   answer,
		})
	}

	return takeFirstN(out, l.SampleSize), nil
}

func decodeJSONLStream(ctx context.Context, r io.Reader) ([]jsonlRow, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	var out []jsonlRow
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		var row jsonlRow
		if err := json.Unmarshal(line, &row); err != nil {
			return out, fmt.Errorf("parse jsonl: %w", err)
		}
		out = append(out, row)
	}
	if err := sc.Err(); err != nil {
		return out, err
	}
	return out, nil
}

func sampleRecords() []Record {
	return []Record{
		{
			ID:       "wmdp-chem-sample-1",
			Question: "What is the boiling point of water?",
			Choices:  []string{"100°C", "0°C", "50°C", "212°C"},
			Answer:   0,
		},
		{
			ID:       "wmdp-chem-sample-2",
			Question: "Which element has the chemical symbol Na?",
			Choices:  []string{"Nitrogen", "Sodium", "Neon", "Nickel"},
			Answer:   1,
		},
		{
			ID:       "wmdp-chem-sample-3",
			Question: "What is the pH of a neutral aqueous solution at 25°C?",
			Choices:  []string{"0", "7", "14", "1"},
			Answer:   1,
		},
	}
}
