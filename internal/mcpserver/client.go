package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config holds the configuration for connecting to the scoring API.
type Config struct {
	APIURL string // Base URL, e.g. "http://localhost:8080"
	APIKey string // Optional API key forwarded for rate limiting
}

// FraudscoreClient is a pure HTTP client for the scoring API.
type FraudscoreClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewFraudscoreClient creates a new client for the scoring API.
func NewFraudscoreClient(cfg Config) *FraudscoreClient {
	return &FraudscoreClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// apiError represents an error response from the API.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// doRequest makes an HTTP request to the API and returns the response body.
func (c *FraudscoreClient) doRequest(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if c.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", c.cfg.APIKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	return json.RawMessage(respBody), nil
}

// ScoreTransaction submits a transaction payload for scoring.
func (c *FraudscoreClient) ScoreTransaction(ctx context.Context, payload map[string]any) (json.RawMessage, error) {
	return c.doRequest(ctx, http.MethodPost, "/predict", payload)
}

// GetHealth returns the service health. A degraded service answers with
// 503 but still carries a meaningful body, so status codes are not
// treated as errors here.
func (c *FraudscoreClient) GetHealth(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return json.RawMessage(respBody), nil
}

// GetModelInfo returns model metadata and the feature layout.
func (c *FraudscoreClient) GetModelInfo(ctx context.Context) (json.RawMessage, error) {
	return c.doRequest(ctx, http.MethodGet, "/info", nil)
}

// RunSelfTest runs the built-in reference transaction test.
func (c *FraudscoreClient) RunSelfTest(ctx context.Context, scenario string) (json.RawMessage, error) {
	path := "/test"
	if scenario == "fraud" {
		path = "/test/fraud"
	}
	return c.doRequest(ctx, http.MethodGet, path, nil)
}
