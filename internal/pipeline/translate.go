package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"text/template"
	"time"

	"github.com/crosslingo/fideval/internal/dataset"
	"github.com/crosslingo/fideval/internal/llm"
)

const translationSystemPrompt = "You are a professional translator specializing in English to Traditional Chinese translation of technical and scientific text."

const translationUserTemplate = `Translate the following multiple-choice chemistry exam question from English to Traditional Chinese (Taiwan usage). Preserve technical terminology precisely.

Question:
{{.Question}}

Choices (JSON array):
{{.Choices}}

Return the original English question and choices verbatim alongside the translation.`

var translationUserTmpl = template.Must(template.New("translate").Parse(translationUserTemplate))

type translationPromptData struct {
	Question string
	Choices  string
}

func translationSchema() *llm.Schema {
	return &llm.Schema{
		Name: "translation",
		Definition: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"en_question": map[string]any{
					"type":        "string",
					"description": "The original English question, verbatim.",
				},
				"en_choices": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "The original English choices, verbatim and in order.",
				},
				"trad_zh_question": map[string]any{
					"type":        "string",
					"description": "The question translated to Traditional Chinese.",
				},
				"trad_zh_choices": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "The choices translated to Traditional Chinese, in order.",
				},
			},
			"required": []string{"en_question", "en_choices", "trad_zh_question", "trad_zh_choices"},
		},
	}
}

// LLMTranslator translates records with one provider call per record,
// bounded by Concurrency.
type LLMTranslator struct {
	Provider    llm.Provider
	Concurrency int
	MaxTokens   int
	Timeout     time.Duration
	OnProgress  func()
}

func (t *LLMTranslator) Translate(ctx context.Context, records []dataset.Record) ([]Translation, error) {
	if t == nil {
		return nil, errors.New("pipeline: nil translator")
	}
	if ctx == nil {
		return nil, errors.New("pipeline: nil context")
	}
	if t.Provider == nil {
		return nil, errors.New("pipeline: nil llm provider")
	}

	out := make([]Translation, len(records))
	err := runBatch(ctx, len(records), t.Concurrency, t.OnProgress, func(ctx context.Context, i int) error {
		tr, err := t.translateOne(ctx, records[i])
		if err != nil {
			return err
		}
		out[i] = *tr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (t *LLMTranslator) translateOne(ctx context.Context, rec dataset.Record) (*Translation, error) {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	choicesJSON, err := json.Marshal(rec.Choices)
	if err != nil {
		return nil, fmt.Errorf("pipeline: translate %s: encode choices: %w", rec.ID, err)
	}

	var buf bytes.Buffer
	if err := translationUserTmpl.Execute(&buf, translationPromptData{
		Question: rec.Question,
		Choices:  string(choicesJSON),
	}); err != nil {
		return nil, fmt.Errorf("pipeline: translate %s: render prompt: %w", rec.ID, err)
	}

	resp, err := t.Provider.Complete(ctx, &llm.Request{
		System:    translationSystemPrompt,
		User:      buf.String(),
		MaxTokens: t.MaxTokens,
		Schema:    translationSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: translate %s: %w", rec.ID, err)
	}

	var out Translation
	if err := llm.ParseJSON(resp.Text, &out); err != nil {
		return nil, fmt.Errorf("pipeline: translate %s: %w", rec.ID, err)
	}
	if out.ZhHantQuestion == "" || len(out.ZhHantChoices) == 0 || out.ENQuestion == "" || len(out.ENChoices) == 0 {
		return nil, fmt.Errorf("pipeline: translate %s: %w: missing required field", rec.ID, llm.ErrSchemaMismatch)
	}

	out.ID = rec.ID
	return &out, nil
}
