package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Report   ReportConfig   `yaml:"report"`
}

type LLMConfig struct {
	DefaultProvider string                    `yaml:"default_provider,omitempty"`
	Providers       map[string]ProviderConfig `yaml:"providers,omitempty"`
}

type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

type DatasetConfig struct {
	Source     string `yaml:"source,omitempty"` // "jsonl" or "hub"
	Path       string `yaml:"path,omitempty"`   // JSONL file path
	Dataset    string `yaml:"dataset,omitempty"`
	Config     string `yaml:"config,omitempty"`
	Split      string `yaml:"split,omitempty"`
	SampleSize int    `yaml:"sample_size,omitempty"`
}

type PipelineConfig struct {
	Concurrency int      `yaml:"concurrency,omitempty"`
	MaxTokens   int      `yaml:"max_tokens,omitempty"`
	Timeout     Duration `yaml:"timeout,omitempty"`
}

// Duration decodes YAML scalars in Go duration form ("90s", "2m"). Bare
// integers are taken as seconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("config: parse duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("config: invalid duration at line %d", value.Line)
	}
	*d = Duration(time.Duration(n) * time.Second)
	return nil
}

type ReportConfig struct {
	Path string `yaml:"path,omitempty"` // output CSV path
}

const DefaultReportPath = "wmdp_chem_en_zh_eval.csv"

// Load reads the YAML config and layers credential env vars on top. A
// missing file at the default path is not an error; env-only setups are
// common for a one-off run.
func Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	usingDefault := path == ""
	if usingDefault {
		path = DefaultPath
	}

	var cfg Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	case os.IsNotExist(err) && (usingDefault || path == DefaultPath):
	default:
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	if cfg.LLM.Providers == nil {
		cfg.LLM.Providers = make(map[string]ProviderConfig)
	}
	if strings.TrimSpace(cfg.LLM.DefaultProvider) == "" {
		cfg.LLM.DefaultProvider = "openai"
	}
	if strings.TrimSpace(cfg.Report.Path) == "" {
		cfg.Report.Path = DefaultReportPath
	}

	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		p := cfg.LLM.Providers["openai"]
		p.APIKey = v
		cfg.LLM.Providers["openai"] = p
	}

	if v := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")); v != "" {
		p := cfg.LLM.Providers["claude"]
		p.APIKey = v
		cfg.LLM.Providers["claude"] = p
	} else if v := strings.TrimSpace(os.Getenv("ANTHROPIC_AUTH_TOKEN")); v != "" {
		p := cfg.LLM.Providers["claude"]
		p.APIKey = v
		cfg.LLM.Providers["claude"] = p
	}

	if v := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); v != "" {
		p := cfg.LLM.Providers["gemini"]
		p.APIKey = v
		cfg.LLM.Providers["gemini"] = p
	}

	return &cfg, nil
}
