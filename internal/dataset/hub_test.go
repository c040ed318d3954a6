package dataset

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHubLoader(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rows" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("dataset") != "cais/wmdp" || q.Get("config") != "wmdp-chem" || q.Get("split") != "test" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		if q.Get("offset") != "0" {
			http.Error(w, "unexpected offset", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"rows": [
				{"row_idx": 0, "row": {"question": "Which halogen is a liquid at room temperature?", "choices": ["Bromine", "Chlorine", "Iodine", "Fluorine"], "answer": 0}},
				{"row_idx": 1, "row": {"question": "What is the conjugate base of HCl?", "choices": ["Cl-", "H+", "OH-", "H2O"], "answer": 0}},
				{"row_idx": 2, "row": {"question": "Which process separates liquids by boiling point?", "choices": ["Distillation", "Filtration", "Titration", "Chromatography"], "answer": 0}}
			],
			"num_rows_total": 3
		}`)
	}))
	defer srv.Close()

	l := &HubLoader{BaseURL: srv.URL}
	records, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0].ID != "wmdp-chem-1" || records[2].ID != "wmdp-chem-3" {
		t.Fatalf("ids: %q %q", records[0].ID, records[2].ID)
	}
	if records[1].Question != "What is the conjugate base of HCl?" {
		t.Fatalf("order: got %q", records[1].Question)
	}
}

func TestHubLoaderSampleSize(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"rows": [
				{"row_idx": 0, "row": {"question": "q1", "choices": ["a", "b"], "answer": 0}},
				{"row_idx": 1, "row": {"question": "q2", "choices": ["a", "b"], "answer": 1}}
			],
			"num_rows_total": 2
		}`)
	}))
	defer srv.Close()

	l := &HubLoader{BaseURL: srv.URL, SampleSize: 1}
	records, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 || records[0].Question != "q1" {
		t.Fatalf("got %+v", records)
	}
}

func TestHubLoaderServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	l := &HubLoader{BaseURL: srv.URL}
	if _, err := l.Load(context.Background()); err == nil {
		t.Fatalf("want error for non-200 response")
	}
}
