package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"eazyhealth/internal/ports"
)

const anthropicVersion = "2023-06-01"

// AnthropicProvider implements ports.LLMProvider against the Anthropic
// messages API.
type AnthropicProvider struct {
	endpoint    string
	model       string
	apiKey      string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

var _ ports.LLMProvider = (*AnthropicProvider)(nil)

// NewAnthropicProvider builds a client bound to one model configuration.
func NewAnthropicProvider(endpoint, model, apiKey string, maxTokens int, temperature float64) *AnthropicProvider {
	return &AnthropicProvider{
		endpoint:    endpoint,
		model:       model,
		apiKey:      apiKey,
		maxTokens:   maxTokens,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: 120 * time.Second},
	}
}

// Name identifies the strategy.
func (p *AnthropicProvider) Name() string { return "anthropic" }

// Complete posts the prompt as a messages request and returns the first
// text block.
func (p *AnthropicProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	if p.apiKey == "" || p.endpoint == "" || p.model == "" {
		return "", fmt.Errorf("anthropic client misconfigured")
	}

	payload := map[string]any{
		"model":       p.model,
		"max_tokens":  p.maxTokens,
		"temperature": p.temperature,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	if system != "" {
		payload["system"] = system
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("anthropic error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var decoded struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	for _, block := range decoded.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("anthropic returned no text content")
}
