package client

import (
	"context"
	"net/http"
)

// PlanService handles plan and usage API calls.
type PlanService struct {
	client *Client
}

// List returns the public plan catalog.
func (s *PlanService) List(ctx context.Context) ([]Plan, error) {
	var resp struct {
		Plans []Plan `json:"plans"`
	}
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/plans", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Plans, nil
}

// CurrentPlan pairs the account's plan with its capability snapshot.
type CurrentPlan struct {
	Plan  *Plan           `json:"plan"`
	Tier  string          `json:"tier"`
	Usage *Usage          `json:"usage"`
	Can   map[string]bool `json:"can"`
}

// Current returns the account's plan, usage and capability flags.
func (s *PlanService) Current(ctx context.Context) (*CurrentPlan, error) {
	var resp CurrentPlan
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/plans/current", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Usage returns the account's current-period usage counters.
func (s *PlanService) Usage(ctx context.Context) (*Usage, error) {
	var resp struct {
		Usage *Usage `json:"usage"`
	}
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/usage", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Usage, nil
}
