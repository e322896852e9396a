package config

import (
	"fmt"
	"os"

	"github.com/aliciamoraes/sana-agent/internal/domain"
)

type Provider string

const (
	ProviderOpenRouter Provider = "openrouter"
	ProviderGemini     Provider = "gemini"
	ProviderMock       Provider = "mock"
)

const (
	defaultOpenRouterModel = "meta-llama/llama-3-70b-instruct"
	defaultGeminiModel     = "gemini-2.5-flash"
)

type Config struct {
	Provider Provider

	// APIKey is the secret for the selected provider. Its absence is fatal
	// before any session logic runs (unless the mock provider is used).
	APIKey  string
	BaseURL string
	Model   string

	Variant    domain.Variant
	UseMockLLM bool
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "TRUE"
}

// Load reads all env vars and builds the config. Flag overrides are
// applied by the command afterwards; Validate runs last.
func Load() *Config {
	cfg := &Config{
		Provider:   Provider(getEnv("SANA_PROVIDER", string(ProviderOpenRouter))),
		BaseURL:    getEnv("SANA_BASE_URL", ""),
		Model:      getEnv("SANA_MODEL", ""),
		Variant:    domain.Variant(getEnv("SANA_VARIANT", string(domain.VariantClassic))),
		UseMockLLM: getBoolEnv("SANA_USE_MOCK_LLM", false),
	}

	switch cfg.Provider {
	case ProviderGemini:
		cfg.APIKey = getEnv("GEMINI_API_KEY", "")
	default:
		cfg.APIKey = getEnv("OPENROUTER_API_KEY", getEnv("SANA_API_KEY", ""))
	}

	if cfg.UseMockLLM {
		cfg.Provider = ProviderMock
	}

	if cfg.Model == "" {
		switch cfg.Provider {
		case ProviderGemini:
			cfg.Model = defaultGeminiModel
		default:
			cfg.Model = defaultOpenRouterModel
		}
	}

	return cfg
}

// Validate checks the parts whose absence must stop the program before a
// session starts.
func (c *Config) Validate() error {
	switch c.Variant {
	case domain.VariantClassic, domain.VariantGentle, domain.VariantInsight:
	default:
		return fmt.Errorf("unknown variant %q (want classic, gentle, or insight)", c.Variant)
	}

	switch c.Provider {
	case ProviderMock:
	case ProviderOpenRouter:
		if c.APIKey == "" {
			return fmt.Errorf("OpenRouter API key not found: set OPENROUTER_API_KEY")
		}
	case ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("Gemini API key not found: set GEMINI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown provider %q (want openrouter, gemini, or mock)", c.Provider)
	}

	return nil
}
