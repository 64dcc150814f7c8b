// Package client is a typed Go client for the SEOgenix HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the SEOgenix API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Config holds the client configuration.
type Config struct {
	BaseURL    string        // API base URL (e.g. "https://api.seogenix.com")
	Timeout    time.Duration // HTTP client timeout (default: 60s, analysis calls are slow)
	HTTPClient *http.Client  // Optional custom HTTP client
}

// NewClient creates a new SEOgenix API client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
	}
}

// SetToken sets the access token for authenticated requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// GetToken returns the current access token.
func (c *Client) GetToken() string {
	return c.token
}

func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr APIError
		if err := json.Unmarshal(respBody, &apiErr); err != nil {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
		}
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// Auth returns the authentication service.
func (c *Client) Auth() *AuthService {
	return &AuthService{client: c}
}

// Sites returns the site management service.
func (c *Client) Sites() *SiteService {
	return &SiteService{client: c}
}

// Audits returns the audit service.
func (c *Client) Audits() *AuditService {
	return &AuditService{client: c}
}

// Analysis returns the analysis service.
func (c *Client) Analysis() *AnalysisService {
	return &AnalysisService{client: c}
}

// Plans returns the plan and usage service.
func (c *Client) Plans() *PlanService {
	return &PlanService{client: c}
}
