package llm

import (
	"errors"
	"strings"
	"testing"
)

func TestParseJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Score int    `json:"score"`
		Note  string `json:"note"`
	}

	{
		var out payload
		if err := ParseJSON(`{"score": 7, "note": "ok"}`, &out); err != nil {
			t.Fatalf("ParseJSON: %v", err)
		}
		if out.Score != 7 || out.Note != "ok" {
			t.Fatalf("got %+v", out)
		}
	}
	{
		var out payload
		raw := "```json\n{\"score\": 3, \"note\": \"fenced\"}\n```"
		if err := ParseJSON(raw, &out); err != nil {
			t.Fatalf("ParseJSON fenced: %v", err)
		}
		if out.Score != 3 || out.Note != "fenced" {
			t.Fatalf("got %+v", out)
		}
	}
	{
		var out payload
		raw := `Here is the result: {"score": 5, "note": "prefixed"} done.`
		if err := ParseJSON(raw, &out); err != nil {
			t.Fatalf("ParseJSON prefixed: %v", err)
		}
		if out.Score != 5 {
			t.Fatalf("got %+v", out)
		}
	}
}

func TestParseJSONErrors(t *testing.T) {
	t.Parallel()

	var out map[string]any
	for _, raw := range []string{"", "no json here", "{broken"} {
		err := ParseJSON(raw, &out)
		if err == nil {
			t.Fatalf("ParseJSON(%q): want error", raw)
		}
		if !errors.Is(err, ErrSchemaMismatch) {
			t.Fatalf("ParseJSON(%q): err=%v, want ErrSchemaMismatch", raw, err)
		}
	}
}

func TestSchemaPromptSuffix(t *testing.T) {
	t.Parallel()

	if got := schemaPromptSuffix(nil); got != "" {
		t.Fatalf("nil schema: got %q", got)
	}

	s := &Schema{
		Name:       "thing",
		Definition: map[string]any{"type": "object"},
	}
	got := schemaPromptSuffix(s)
	if got == "" {
		t.Fatalf("got empty suffix")
	}
	want := `{"type":"object"}`
	if !strings.Contains(got, want) {
		t.Fatalf("suffix %q missing %q", got, want)
	}
}
