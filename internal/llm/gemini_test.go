package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestToGenaiSchema(t *testing.T) {
	t.Parallel()

	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string", "description": "the question"},
			"choices": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"score": map[string]any{"type": "integer"},
		},
		"required": []string{"question", "choices", "score"},
	}

	got := toGenaiSchema(def)
	if got == nil {
		t.Fatalf("got nil schema")
	}
	if got.Type != genai.TypeObject {
		t.Fatalf("type: got %v", got.Type)
	}
	if len(got.Required) != 3 {
		t.Fatalf("required: got %v", got.Required)
	}

	q := got.Properties["question"]
	if q == nil || q.Type != genai.TypeString || q.Description != "the question" {
		t.Fatalf("question: got %+v", q)
	}
	c := got.Properties["choices"]
	if c == nil || c.Type != genai.TypeArray || c.Items == nil || c.Items.Type != genai.TypeString {
		t.Fatalf("choices: got %+v", c)
	}
	s := got.Properties["score"]
	if s == nil || s.Type != genai.TypeInteger {
		t.Fatalf("score: got %+v", s)
	}

	if toGenaiSchema(nil) != nil {
		t.Fatalf("nil definition: want nil schema")
	}
}

func TestSchemaRequired(t *testing.T) {
	t.Parallel()

	if got := schemaRequired([]any{"a", 1, "b"}); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("got %v", got)
	}
	if got := schemaRequired(nil); got != nil {
		t.Fatalf("got %v", got)
	}
}
