package llm

import (
	"fmt"
	"sort"
	"strings"
)

// Registry holds the providers built from config, keyed by canonical name
// ("openai", "claude", "gemini").
type Registry struct {
	providers map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

func (r *Registry) Register(p Provider) {
	if r == nil || p == nil {
		return
	}
	name := canonicalProviderName(p.Name())
	if name == "" {
		return
	}
	if r.providers == nil {
		r.providers = make(map[string]Provider)
	}
	r.providers[name] = p
}

// Get resolves a provider name, accepting the vendor aliases ("anthropic",
// "google") that appear in config files. Unknown names report what is
// configured so a mistyped flag value is self-explaining.
func (r *Registry) Get(name string) (Provider, error) {
	if r == nil || len(r.providers) == 0 {
		return nil, fmt.Errorf("llm: no providers configured")
	}
	name = canonicalProviderName(name)
	if name == "" {
		return nil, fmt.Errorf("llm: empty provider name (available: %s)", strings.Join(r.Names(), ", "))
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("llm: provider %q not configured (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// Names lists the configured provider names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.providers))
	for name := range r.providers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func canonicalProviderName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "anthropic":
		return "claude"
	case "google":
		return "gemini"
	}
	return name
}
