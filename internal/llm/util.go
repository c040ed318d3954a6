package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON extracts the first JSON object from raw model output into out.
// Markdown code fences are stripped first. Any failure is reported as
// ErrSchemaMismatch.
func ParseJSON(raw string, out any) error {
	s := strings.TrimSpace(raw)
	if s == "" {
		return fmt.Errorf("llm: %w: empty output", ErrSchemaMismatch)
	}

	if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
		if strings.HasPrefix(s, "json") {
			s = strings.TrimSpace(strings.TrimPrefix(s, "json"))
		}
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = strings.TrimSpace(s[:idx])
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < 0 || start >= end {
		return fmt.Errorf("llm: %w: missing JSON object", ErrSchemaMismatch)
	}

	s = s[start : end+1]
	if err := json.Unmarshal([]byte(s), out); err != nil {
		return fmt.Errorf("llm: %w: %v", ErrSchemaMismatch, err)
	}
	return nil
}

// schemaPromptSuffix renders a schema instruction for providers without a
// native structured-output mechanism.
func schemaPromptSuffix(schema *Schema) string {
	if schema == nil {
		return ""
	}
	b, err := json.Marshal(schema.Definition)
	if err != nil {
		return ""
	}
	return "\n\nOutput ONLY valid JSON conforming to this JSON Schema, with no surrounding text:\n" + string(b)
}
