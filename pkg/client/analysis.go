package client

import (
	"context"
	"net/http"
)

// AnalysisService handles AI analysis API calls.
type AnalysisService struct {
	client *Client
}

// AnalyzeContent scores a block of content.
func (s *AnalysisService) AnalyzeContent(ctx context.Context, content string) (*ContentAnalysis, error) {
	var resp ContentAnalysis
	body := map[string]string{"content": content}
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/analysis/content", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateSchema generates JSON-LD markup for a URL. Returns the markup as
// a string.
func (s *AnalysisService) GenerateSchema(ctx context.Context, url, schemaType string) (string, error) {
	var resp struct {
		Schema string `json:"schema"`
	}
	body := map[string]string{"url": url, "schema_type": schemaType}
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/analysis/schema", body, &resp); err != nil {
		return "", err
	}
	return resp.Schema, nil
}

// Chat sends a message to the in-app assistant.
func (s *AnalysisService) Chat(ctx context.Context, message string) (*ChatReply, error) {
	var resp ChatReply
	body := map[string]string{"message": message}
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/chatbot", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
