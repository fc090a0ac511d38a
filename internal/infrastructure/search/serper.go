package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"eazyhealth/internal/domain"
	"eazyhealth/internal/ports"
)

const serperEndpoint = "https://google.serper.dev/search"

// SerperProvider queries the Serper search API.
type SerperProvider struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

var _ ports.SearchProvider = (*SerperProvider)(nil)

// NewSerperProvider builds a client from an API key.
func NewSerperProvider(apiKey string) *SerperProvider {
	return &SerperProvider{
		endpoint:   serperEndpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies the strategy.
func (p *SerperProvider) Name() string { return "serper" }

// Search issues the query and maps organic results.
func (p *SerperProvider) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	body, err := json.Marshal(map[string]any{
		"q":   query,
		"num": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("X-API-KEY", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper returned %s", resp.Status)
	}

	var decoded struct {
		Organic []struct {
			Link    string `json:"link"`
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"organic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(decoded.Organic))
	for _, item := range decoded.Organic {
		if len(results) == limit {
			break
		}
		results = append(results, domain.SearchResult{
			URL:     item.Link,
			Title:   item.Title,
			Snippet: item.Snippet,
		})
	}

	return results, nil
}
