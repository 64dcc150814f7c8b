package client

import (
	"context"
	"fmt"
	"net/http"
)

// AuditService handles audit API calls.
type AuditService struct {
	client *Client
}

// Run audits a site.
func (s *AuditService) Run(ctx context.Context, siteID string) (*AuditResult, error) {
	var resp AuditResult
	body := map[string]string{"site_id": siteID}
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/audits/run", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns a site's audit history.
func (s *AuditService) List(ctx context.Context, siteID string) ([]Audit, error) {
	var resp struct {
		Audits []Audit `json:"audits"`
	}
	path := fmt.Sprintf("/api/v1/sites/%s/audits", siteID)
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Audits, nil
}

// Latest returns a site's most recent audit.
func (s *AuditService) Latest(ctx context.Context, siteID string) (*AuditResult, error) {
	var resp AuditResult
	path := fmt.Sprintf("/api/v1/sites/%s/audits/latest", siteID)
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
