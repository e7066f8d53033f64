// Package generator produces candidate keyword strings from ad features by
// calling a hosted chat-completion model. The rest of the pipeline treats
// it as an opaque candidate source; scoring never depends on how candidates
// were produced.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"kwforge/internal/config"
	"kwforge/internal/models"
)

// CandidateSource supplies raw candidate keyword strings for an ad.
// Implementations must return lower-cased, deduplicated keywords.
type CandidateSource interface {
	GenerateKeywords(ctx context.Context, features models.AdFeatures) ([]string, error)
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (tests, custom
// transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New builds a generator client from configuration. When an OAuth2 token
// URL is configured the client authenticates with client credentials
// instead of the static API key; some enterprise gateways front the model
// endpoint that way.
func New(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(cfg.LLMBaseURL, "/"),
		apiKey:      cfg.LLMAPIKey,
		model:       cfg.LLMModel,
		temperature: 0.7,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
	}

	if cfg.LLMOAuthTokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.LLMOAuthClientID,
			ClientSecret: cfg.LLMOAuthClientSecret,
			TokenURL:     cfg.LLMOAuthTokenURL,
		}
		c.httpClient = cc.Client(context.Background())
		c.httpClient.Timeout = 60 * time.Second
		c.apiKey = ""
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// keywordPayload is the JSON object the prompt asks the model to emit.
type keywordPayload struct {
	Keywords []string `json:"keywords"`
}

// GenerateKeywords asks the model for keyword variants matching the ad
// features and returns them cleaned: trimmed, lower-cased, deduplicated,
// empty strings dropped.
func (c *Client) GenerateKeywords(ctx context.Context, features models.AdFeatures) ([]string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(features)},
		},
		Temperature:    c.temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("chat completion returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	var payload keywordPayload
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("model output is not a keywords object: %w", err)
	}

	keywords := cleanKeywords(payload.Keywords)
	slog.Info("generated candidate keywords", "count", len(keywords), "model", c.model)
	return keywords, nil
}

// cleanKeywords trims, lower-cases, and deduplicates while preserving the
// model's output order.
func cleanKeywords(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, kw := range raw {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
