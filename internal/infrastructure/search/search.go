// Package search provides interchangeable web-search strategies (Brave,
// Serper, mock) behind ports.SearchProvider. The active strategy is picked
// once at startup.
package search

import (
	"fmt"

	"eazyhealth/internal/config"
	"eazyhealth/internal/ports"
)

// New selects and builds the configured provider.
func New(cfg config.SearchConfig) (ports.SearchProvider, error) {
	switch cfg.Provider {
	case "brave":
		if cfg.BraveAPIKey == "" {
			return nil, fmt.Errorf("brave selected but no API key configured")
		}
		return NewBraveProvider(cfg.BraveAPIKey), nil
	case "serper":
		if cfg.SerperAPIKey == "" {
			return nil, fmt.Errorf("serper selected but no API key configured")
		}
		return NewSerperProvider(cfg.SerperAPIKey), nil
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported search provider %q", cfg.Provider)
	}
}
