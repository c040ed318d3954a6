// Package report serializes evaluation results to CSV and summarizes
// fidelity scores.
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/crosslingo/fideval/internal/dataset"
	"github.com/crosslingo/fideval/internal/pipeline"
)

// ErrEncoding marks failures encoding or re-parsing report cell values.
var ErrEncoding = errors.New("encoding error")

// Columns is the fixed CSV column order.
var Columns = []string{
	"en_question",
	"en_choices",
	"trad_zh_question",
	"trad_zh_choices",
	"answer",
	"score",
	"differences",
}

// Writer merges evaluations with their source records, aligned by record ID,
// and writes one CSV row per record. Drift between the model-returned
// English text and the dataset's original is printed to Diagnostics.
type Writer struct {
	Diagnostics io.Writer
}

func (w *Writer) Write(out io.Writer, records []dataset.Record, evals []pipeline.Evaluation) error {
	if w == nil {
		return errors.New("report: nil writer")
	}
	if out == nil {
		return errors.New("report: nil output")
	}
	if len(records) != len(evals) {
		return fmt.Errorf("report: %d records but %d evaluations", len(records), len(evals))
	}

	byID := make(map[string]dataset.Record, len(records))
	for _, rec := range records {
		if _, dup := byID[rec.ID]; dup {
			return fmt.Errorf("report: duplicate record id %q", rec.ID)
		}
		byID[rec.ID] = rec
	}

	diag := w.Diagnostics
	if diag == nil {
		diag = io.Discard
	}

	cw := csv.NewWriter(out)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}

	for _, ev := range evals {
		rec, ok := byID[ev.ID]
		if !ok {
			return fmt.Errorf("report: no source record for id %q", ev.ID)
		}

		reportDrift(diag, rec, ev)

		enChoices, err := cellValue(choiceCell(ev.ENChoices))
		if err != nil {
			return fmt.Errorf("report: row %s: en_choices: %w", ev.ID, err)
		}
		zhChoices, err := cellValue(choiceCell(ev.ZhHantChoices))
		if err != nil {
			return fmt.Errorf("report: row %s: trad_zh_choices: %w", ev.ID, err)
		}

		row := []string{
			ev.ENQuestion,
			enChoices,
			ev.ZhHantQuestion,
			zhChoices,
			strconv.Itoa(rec.Answer),
			strconv.Itoa(ev.Score),
			ev.Differences,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: write row %s: %w", ev.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: flush: %w", err)
	}
	return nil
}

func choiceCell(c pipeline.ChoiceList) any {
	if c == nil {
		return nil
	}
	return []string(c)
}

// cellValue renders one CSV cell. List values are JSON-encoded to fit a
// single cell; string values are assumed already encoded and left unchanged.
func cellValue(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case []string:
		b, err := json.Marshal(x)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		return string(b), nil
	case int:
		return strconv.Itoa(x), nil
	default:
		return "", fmt.Errorf("%w: unsupported cell type %T", ErrEncoding, v)
	}
}

// reportDrift prints a diagnostic when the evaluation stage's returned
// English text differs from the dataset's original. Models are known to
// silently "correct" perceived source errors; the skew is reported, not
// repaired.
func reportDrift(w io.Writer, rec dataset.Record, ev pipeline.Evaluation) {
	if ev.ENQuestion != rec.Question {
		fmt.Fprintf(w, "%s: model altered the English question\n  dataset: %q\n  model:   %q\n", ev.ID, rec.Question, ev.ENQuestion)
	}
	if !slices.Equal([]string(ev.ENChoices), rec.Choices) {
		fmt.Fprintf(w, "%s: model altered the English choices\n  dataset: %q\n  model:   %q\n", ev.ID, rec.Choices, []string(ev.ENChoices))
	}
}
