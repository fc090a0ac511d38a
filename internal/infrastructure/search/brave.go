package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"eazyhealth/internal/domain"
	"eazyhealth/internal/ports"
)

const braveEndpoint = "https://api.search.brave.com/res/v1/web/search"

// BraveProvider queries the Brave Search API.
type BraveProvider struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

var _ ports.SearchProvider = (*BraveProvider)(nil)

// NewBraveProvider builds a client from an API key.
func NewBraveProvider(apiKey string) *BraveProvider {
	return &BraveProvider{
		endpoint:   braveEndpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies the strategy.
func (p *BraveProvider) Name() string { return "brave" }

// Search issues the query and maps web results.
func (p *BraveProvider) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	endpoint, err := url.Parse(p.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := endpoint.Query()
	q.Set("q", query)
	q.Set("count", strconv.Itoa(limit))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("X-Subscription-Token", p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brave search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave returned %s", resp.Status)
	}

	var decoded struct {
		Web struct {
			Results []struct {
				URL         string `json:"url"`
				Title       string `json:"title"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(decoded.Web.Results))
	for _, item := range decoded.Web.Results {
		if len(results) == limit {
			break
		}
		results = append(results, domain.SearchResult{
			URL:     item.URL,
			Title:   item.Title,
			Snippet: item.Description,
		})
	}

	return results, nil
}
