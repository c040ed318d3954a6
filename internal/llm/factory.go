package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/crosslingo/fideval/internal/config"
)

func NewRegistryFromConfig(cfg *config.Config) (*Registry, error) {
	if cfg == nil {
		return nil, errors.New("llm: nil config")
	}

	r := NewRegistry()
	for name, pcfg := range cfg.LLM.Providers {
		key := strings.ToLower(strings.TrimSpace(name))
		switch key {
		case "":
			continue
		case "claude", "anthropic":
			r.Register(NewClaudeProvider(pcfg.APIKey, pcfg.BaseURL, pcfg.Model))
		case "openai":
			r.Register(NewOpenAIProvider(pcfg.APIKey, pcfg.BaseURL, pcfg.Model))
		case "gemini", "google":
			r.Register(NewGeminiProvider(pcfg.APIKey, pcfg.Model))
		default:
			return nil, fmt.Errorf("llm: unknown provider %q", name)
		}
	}

	return r, nil
}

func ProviderFromConfig(cfg *config.Config, name string) (Provider, error) {
	if cfg == nil {
		return nil, errors.New("llm: nil config")
	}
	reg, err := NewRegistryFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(cfg.LLM.DefaultProvider)
	}
	if name == "" {
		name = "openai"
	}

	p, err := reg.Get(name)
	if err == nil {
		return p, nil
	}

	// A single configured provider serves regardless of the requested name.
	if names := reg.Names(); len(names) == 1 {
		return reg.Get(names[0])
	}
	return nil, err
}
