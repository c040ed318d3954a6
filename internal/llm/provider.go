package llm

import "context"

// Provider is a text-generation backend that can return output constrained
// to a declared schema.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// Schema declares the shape the model output must conform to. Definition is
// a JSON Schema document; providers map it to their native structured-output
// mechanism or embed it in the prompt.
type Schema struct {
	Name       string
	Definition map[string]any
}

type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
	Schema      *Schema
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type Response struct {
	Text  string
	Usage Usage
}
