package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeJSONL(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.jsonl")
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatalf("write jsonl: %v", err)
	}
	return path
}

func TestJSONLLoader(t *testing.T) {
	path := writeJSONL(t, `
{"id": "q-1", "question": "Which gas is produced when zinc reacts with hydrochloric acid?", "choices": ["Hydrogen", "Oxygen", "Chlorine", "Nitrogen"], "answer": 0}

{"question": "What is the molar mass of water, in g/mol?", "choices": ["16", "18", "20", "22"], "answer": "B"}
{"question": "Which acid is found in vinegar?", "choices": ["Acetic acid", "Citric acid", "Sulfuric acid", "Nitric acid"], "answer": 1.0}
`)
	t.Setenv(PathEnv, "")

	l := &JSONLLoader{Path: path}
	records, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records", len(records))
	}

	if records[0].ID != "q-1" || records[0].Answer != 0 {
		t.Fatalf("record 0: %+v", records[0])
	}
	if records[1].ID != "wmdp-chem-2" {
		t.Fatalf("record 1 id: %q", records[1].ID)
	}
	if records[1].Answer != 1 {
		t.Fatalf("record 1 answer: got %d (letter key)", records[1].Answer)
	}
	if records[2].Answer != 1 {
		t.Fatalf("record 2 answer: got %d (float numeric key)", records[2].Answer)
	}
}

func TestJSONLLoaderEnvOverride(t *testing.T) {
	path := writeJSONL(t, `{"question": "q", "choices": ["a", "b"], "answer": 1}`)
	t.Setenv(PathEnv, path)

	l := &JSONLLoader{Path: "does/not/exist.jsonl"}
	records, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 || records[0].Answer != 1 {
		t.Fatalf("got %+v", records)
	}
}

func TestJSONLLoaderMissingFileFallsBack(t *testing.T) {
	t.Setenv(PathEnv, "")

	l := &JSONLLoader{Path: filepath.Join(t.TempDir(), "missing.jsonl"), SampleSize: 2}
	records, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("sample fallback: got %d records", len(records))
	}
	if records[0].Question == "" || len(records[0].Choices) != 4 {
		t.Fatalf("sample record: %+v", records[0])
	}
}

func TestJSONLLoaderBadAnswer(t *testing.T) {
	path := writeJSONL(t, `{"question": "q", "choices": ["a", "b"], "answer": 9}`)
	t.Setenv(PathEnv, "")

	l := &JSONLLoader{Path: path}
	if _, err := l.Load(context.Background()); err == nil {
		t.Fatalf("want error for out-of-range answer")
	}
}

func TestAnswerIndex(t *testing.T) {
	t.Parallel()

	choices := []string{"alpha", "beta", "gamma", "delta"}

	cases := []struct {
		in   any
		want int
	}{
		{0, 0},
		{3, 3},
		{4, 3},        // one-based
		{float64(2), 2},
		{"C", 2},
		{"d", 3},
		{"2", 2},
		{"beta", 1},
	}
	for _, tc := range cases {
		got, err := answerIndex(tc.in, choices)
		if err != nil {
			t.Fatalf("answerIndex(%v): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("answerIndex(%v): got %d want %d", tc.in, got, tc.want)
		}
	}

	for _, in := range []any{"", "zeta", 5, -1, true} {
		if _, err := answerIndex(in, choices); err == nil {
			t.Fatalf("answerIndex(%v): want error", in)
		}
	}
}

func TestTakeFirstN(t *testing.T) {
	t.Parallel()

	in := []int{1, 2, 3}
	if got := takeFirstN(in, 0); len(got) != 3 {
		t.Fatalf("n=0: got %v", got)
	}
	if got := takeFirstN(in, 5); len(got) != 3 {
		t.Fatalf("n=5: got %v", got)
	}
	if got := takeFirstN(in, 2); len(got) != 2 || got[1] != 2 {
		t.Fatalf("n=2: got %v", got)
	}
}
