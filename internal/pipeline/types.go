// Package pipeline runs the two LLM stages: English to Traditional Chinese
// translation, then semantic-fidelity scoring of each translation.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/crosslingo/fideval/internal/dataset"
)

// ChoiceList decodes a choices field that may arrive either as a JSON array
// of strings or as a string containing a JSON-encoded array. Models return
// both shapes; accepting the string form here keeps the report writer from
// ever double-encoding it.
type ChoiceList []string

func (c *ChoiceList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*c = arr
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("choices: expected array or string: %w", err)
	}
	if err := json.Unmarshal([]byte(s), &arr); err != nil {
		return fmt.Errorf("choices: string value is not a JSON array: %w", err)
	}
	*c = arr
	return nil
}

// Translation is the structured output of the translation stage. The en_*
// fields are asked back from the model verbatim but are not guaranteed to
// match the source; the report writer diagnoses any drift. ID is attached
// locally from the source record and never passes through the model.
type Translation struct {
	ID             string     `json:"-"`
	ENQuestion     string     `json:"en_question"`
	ENChoices      ChoiceList `json:"en_choices"`
	ZhHantQuestion string     `json:"trad_zh_question"`
	ZhHantChoices  ChoiceList `json:"trad_zh_choices"`
}

// Evaluation is the structured output of the fidelity-scoring stage.
type Evaluation struct {
	Translation
	Differences string `json:"differences"`
	Score       int    `json:"score"`
}

// Translator produces one Translation per input record, order-preserving.
type Translator interface {
	Translate(ctx context.Context, records []dataset.Record) ([]Translation, error)
}

// Evaluator produces one Evaluation per input translation, order-preserving.
type Evaluator interface {
	Evaluate(ctx context.Context, translations []Translation) ([]Evaluation, error)
}
