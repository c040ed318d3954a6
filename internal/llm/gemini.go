package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider calls the Gemini API with native structured output
// (response schema + JSON MIME type). The SDK client needs a context, so it
// is created lazily on first use.
type GeminiProvider struct {
	apiKey string
	model  string

	once    sync.Once
	client  *genai.Client
	initErr error
}

func NewGeminiProvider(apiKey string, model string) *GeminiProvider {
	m := strings.TrimSpace(model)
	if m == "" {
		m = defaultGeminiModel
	}
	return &GeminiProvider{
		apiKey: strings.TrimSpace(apiKey),
		model:  m,
	}
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

func (p *GeminiProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	if p == nil {
		return nil, errors.New("llm: gemini: nil provider")
	}
	if ctx == nil {
		return nil, errors.New("llm: gemini: nil context")
	}
	if req == nil {
		return nil, errors.New("llm: gemini: nil request")
	}

	p.once.Do(func() {
		p.client, p.initErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  p.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	if p.initErr != nil {
		return nil, fmt.Errorf("llm: gemini: %w: %w", ErrService, p.initErr)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if system := strings.TrimSpace(req.System); system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = toGenaiSchema(req.Schema.Definition)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.User), cfg)
	if err != nil {
		return nil, fmt.Errorf("llm: gemini: %w: %w", ErrService, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("llm: gemini: %w: nil response", ErrService)
	}

	out := &Response{Text: resp.Text()}
	if resp.UsageMetadata != nil {
		out.Usage = Usage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	return out, nil
}

// toGenaiSchema converts the subset of JSON Schema this pipeline emits
// (object/array/string/integer plus required and description) into the SDK's
// schema type.
func toGenaiSchema(def map[string]any) *genai.Schema {
	if len(def) == 0 {
		return nil
	}

	out := &genai.Schema{}
	if desc, ok := def["description"].(string); ok {
		out.Description = desc
	}

	typ, _ := def["type"].(string)
	switch strings.ToLower(strings.TrimSpace(typ)) {
	case "object":
		out.Type = genai.TypeObject
		if props, ok := def["properties"].(map[string]any); ok {
			out.Properties = make(map[string]*genai.Schema, len(props))
			for name, raw := range props {
				sub, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				out.Properties[name] = toGenaiSchema(sub)
			}
		}
		out.Required = schemaRequired(def["required"])
	case "array":
		out.Type = genai.TypeArray
		if items, ok := def["items"].(map[string]any); ok {
			out.Items = toGenaiSchema(items)
		}
	case "integer":
		out.Type = genai.TypeInteger
	case "number":
		out.Type = genai.TypeNumber
	case "boolean":
		out.Type = genai.TypeBoolean
	default:
		out.Type = genai.TypeString
	}

	return out
}

func schemaRequired(v any) []string {
	switch value := v.(type) {
	case []string:
		return value
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
