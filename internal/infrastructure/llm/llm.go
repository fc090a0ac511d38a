// Package llm provides interchangeable completion providers. The active
// strategy is selected once at startup from configuration, never by
// runtime string dispatch at call sites.
package llm

import (
	"fmt"

	"eazyhealth/internal/config"
	"eazyhealth/internal/ports"
)

// New selects and builds the configured provider.
func New(cfg config.LLMConfig) (ports.LLMProvider, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai selected but no API key configured")
		}
		return NewOpenAIProvider(cfg.OpenAIEndpoint, cfg.Model, cfg.OpenAIAPIKey, cfg.MaxTokens, cfg.Temperature), nil
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("anthropic selected but no API key configured")
		}
		return NewAnthropicProvider(cfg.AnthropicEndpoint, cfg.Model, cfg.AnthropicAPIKey, cfg.MaxTokens, cfg.Temperature), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
