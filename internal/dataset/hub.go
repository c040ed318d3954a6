package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultHubBaseURL = "https://datasets-server.huggingface.co"
	hubPageSize       = 100
)

// HubLoader fetches a dataset split from the Hugging Face datasets-server
// rows API, paging through the split in order.
type HubLoader struct {
	Dataset    string // e.g. "cais/wmdp"
	Config     string // e.g. "wmdp-chem"
	Split      string // e.g. "test"
	SampleSize int

	BaseURL string
	Client  *http.Client
}

type hubRowsResponse struct {
	Rows []struct {
		RowIdx int      `json:"row_idx"`
		Row    jsonlRow `json:"row"`
	} `json:"rows"`
	NumRowsTotal int `json:"num_rows_total"`
}

func (l *HubLoader) Name() string { return "hub" }

func (l *HubLoader) Load(ctx context.Context) ([]Record, error) {
	if l == nil {
		return nil, errors.New("dataset: nil loader")
	}
	if ctx == nil {
		return nil, errors.New("dataset: nil context")
	}

	name := strings.TrimSpace(l.Dataset)
	if name == "" {
		name = "cais/wmdp"
	}
	cfg := strings.TrimSpace(l.Config)
	if cfg == "" {
		cfg = "wmdp-chem"
	}
	split := strings.TrimSpace(l.Split)
	if split == "" {
		split = "test"
	}

	base := strings.TrimRight(strings.TrimSpace(l.BaseURL), "/")
	if base == "" {
		base = defaultHubBaseURL
	}
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	var out []Record
	total := -1
	for offset := 0; total < 0 || offset < total; offset += hubPageSize {
		page, err := l.fetchPage(ctx, client, base, name, cfg, split, offset)
		if err != nil {
			return nil, err
		}
		if total < 0 {
			total = page.NumRowsTotal
		}
		if len(page.Rows) == 0 {
			break
		}

		for _, r := range page.Rows {
			question := strings.TrimSpace(r.Row.Question)
			choices := compactStrings(r.Row.Choices)
			if question == "" || len(choices) == 0 {
				continue
			}
			answer, err := answerIndex(r.Row.Answer, choices)
			if err != nil {
				return nil, fmt.Errorf("dataset: hub: row %d: %w", r.RowIdx, err)
			}
			id := strings.TrimSpace(r.Row.ID)
			if id == "" {
				id = fmt.Sprintf("%s-%d", cfg, r.RowIdx+1)
			}
			out = append(out, Record{
				ID:       id,
				Question: question,
				Choices:  choices,
				Answer:   answer,
			})
		}

		if l.SampleSize > 0 && len(out) >= l.SampleSize {
			break
		}
	}

	return takeFirstN(out, l.SampleSize), nil
}

func (l *HubLoader) fetchPage(ctx context.Context, client *http.Client, base, name, cfg, split string, offset int) (*hubRowsResponse, error) {
	q := url.Values{}
	q.Set("dataset", name)
	q.Set("config", cfg)
	q.Set("split", split)
	q.Set("offset", fmt.Sprintf("%d", offset))
	q.Set("length", fmt.Sprintf("%d", hubPageSize))

	reqURL := base + "/rows?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dataset: hub: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dataset: hub: fetch rows: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("dataset: hub: %s: status %d: %s", name, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var page hubRowsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("dataset: hub: decode rows: %w", err)
	}
	return &page, nil
}
