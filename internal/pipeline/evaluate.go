package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"text/template"
	"time"

	"github.com/crosslingo/fideval/internal/llm"
)

const evaluationSystemPrompt = "You are a bilingual reviewer who audits English to Traditional Chinese translations of exam questions for meaning preservation."

const evaluationUserTemplate = `Compare the English and Traditional Chinese versions of this multiple-choice question.

English question:
{{.ENQuestion}}

English choices (JSON array):
{{.ENChoices}}

Traditional Chinese question:
{{.ZhHantQuestion}}

Traditional Chinese choices (JSON array):
{{.ZhHantChoices}}

Restate both versions, then describe every divergence in meaning or concept between them in the differences field. Assign an integer score from 0 to 10, where 0 means the translation is unrelated to the original and 10 means the meaning is preserved perfectly.`

var evaluationUserTmpl = template.Must(template.New("evaluate").Parse(evaluationUserTemplate))

type evaluationPromptData struct {
	ENQuestion     string
	ENChoices      string
	ZhHantQuestion string
	ZhHantChoices  string
}

func evaluationSchema() *llm.Schema {
	base := translationSchema()
	def := base.Definition
	props := def["properties"].(map[string]any)
	props["differences"] = map[string]any{
		"type":        "string",
		"description": "All meaning or concept divergences between the two versions. Empty when none.",
	}
	props["score"] = map[string]any{
		"type":        "integer",
		"description": "Fidelity score: 0 means unrelated, 10 means perfect meaning preservation.",
	}
	def["required"] = append(def["required"].([]string), "differences", "score")
	return &llm.Schema{Name: "evaluation", Definition: def}
}

// LLMEvaluator scores translation fidelity with one provider call per
// translation, bounded by Concurrency. The scoring rubric is entirely
// delegated to the model.
type LLMEvaluator struct {
	Provider    llm.Provider
	Concurrency int
	MaxTokens   int
	Timeout     time.Duration
	OnProgress  func()
}

func (e *LLMEvaluator) Evaluate(ctx context.Context, translations []Translation) ([]Evaluation, error) {
	if e == nil {
		return nil, errors.New("pipeline: nil evaluator")
	}
	if ctx == nil {
		return nil, errors.New("pipeline: nil context")
	}
	if e.Provider == nil {
		return nil, errors.New("pipeline: nil llm provider")
	}

	out := make([]Evaluation, len(translations))
	err := runBatch(ctx, len(translations), e.Concurrency, e.OnProgress, func(ctx context.Context, i int) error {
		ev, err := e.evaluateOne(ctx, translations[i])
		if err != nil {
			return err
		}
		out[i] = *ev
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *LLMEvaluator) evaluateOne(ctx context.Context, tr Translation) (*Evaluation, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	enChoices, err := json.Marshal([]string(tr.ENChoices))
	if err != nil {
		return nil, fmt.Errorf("pipeline: evaluate %s: encode choices: %w", tr.ID, err)
	}
	zhChoices, err := json.Marshal([]string(tr.ZhHantChoices))
	if err != nil {
		return nil, fmt.Errorf("pipeline: evaluate %s: encode choices: %w", tr.ID, err)
	}

	var buf bytes.Buffer
	if err := evaluationUserTmpl.Execute(&buf, evaluationPromptData{
		ENQuestion:     tr.ENQuestion,
		ENChoices:      string(enChoices),
		ZhHantQuestion: tr.ZhHantQuestion,
		ZhHantChoices:  string(zhChoices),
	}); err != nil {
		return nil, fmt.Errorf("pipeline: evaluate %s: render prompt: %w", tr.ID, err)
	}

	resp, err := e.Provider.Complete(ctx, &llm.Request{
		System:    evaluationSystemPrompt,
		User:      buf.String(),
		MaxTokens: e.MaxTokens,
		Schema:    evaluationSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: evaluate %s: %w", tr.ID, err)
	}

	var out Evaluation
	if err := llm.ParseJSON(resp.Text, &out); err != nil {
		return nil, fmt.Errorf("pipeline: evaluate %s: %w", tr.ID, err)
	}
	if out.Score < 0 || out.Score > 10 {
		return nil, fmt.Errorf("pipeline: evaluate %s: %w: score %d out of range [0,10]", tr.ID, llm.ErrSchemaMismatch, out.Score)
	}
	if out.ZhHantQuestion == "" || len(out.ZhHantChoices) == 0 || out.ENQuestion == "" || len(out.ENChoices) == 0 {
		return nil, fmt.Errorf("pipeline: evaluate %s: %w: missing required field", tr.ID, llm.ErrSchemaMismatch)
	}

	out.ID = tr.ID
	return &out, nil
}
