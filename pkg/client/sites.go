package client

import (
	"context"
	"fmt"
	"net/http"
)

// SiteService handles site and competitor API calls.
type SiteService struct {
	client *Client
}

// CreateSiteRequest adds a new site.
type CreateSiteRequest struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// List returns the account's sites.
func (s *SiteService) List(ctx context.Context) ([]Site, error) {
	var resp struct {
		Sites []Site `json:"sites"`
	}
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/sites", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sites, nil
}

// Create adds a site.
func (s *SiteService) Create(ctx context.Context, req CreateSiteRequest) (*Site, error) {
	var resp struct {
		Site *Site `json:"site"`
	}
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/sites", req, &resp); err != nil {
		return nil, err
	}
	return resp.Site, nil
}

// Get returns one site.
func (s *SiteService) Get(ctx context.Context, id string) (*Site, error) {
	var resp struct {
		Site *Site `json:"site"`
	}
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/sites/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Site, nil
}

// Delete removes a site.
func (s *SiteService) Delete(ctx context.Context, id string) error {
	return s.client.doRequest(ctx, http.MethodDelete, "/api/v1/sites/"+id, nil, nil)
}

// ListCompetitors returns a site's tracked competitors.
func (s *SiteService) ListCompetitors(ctx context.Context, siteID string) ([]Competitor, error) {
	var resp struct {
		Competitors []Competitor `json:"competitors"`
	}
	path := fmt.Sprintf("/api/v1/sites/%s/competitors", siteID)
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Competitors, nil
}

// AddCompetitor tracks a competitor under a site.
func (s *SiteService) AddCompetitor(ctx context.Context, siteID string, req CreateSiteRequest) (*Competitor, error) {
	var resp struct {
		Competitor *Competitor `json:"competitor"`
	}
	path := fmt.Sprintf("/api/v1/sites/%s/competitors", siteID)
	if err := s.client.doRequest(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return resp.Competitor, nil
}
