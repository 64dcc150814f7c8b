package services

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/seogenix/backend/internal/domain/site"
	"github.com/seogenix/backend/internal/entitlement"
	apperrors "github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/metrics"
)

// SiteService manages audit targets and their tracked competitors,
// enforcing the per-plan count limits on create.
type SiteService struct {
	sites  site.Repository
	logger *logger.Logger
}

func NewSiteService(sites site.Repository, log *logger.Logger) *SiteService {
	return &SiteService{sites: sites, logger: log}
}

// normalizeURL requires an absolute http(s) URL and strips trailing slashes.
func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", apperrors.BadRequest("url must be an absolute http or https URL")
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// Create adds a site when the plan's site limit allows another.
func (s *SiteService) Create(ctx context.Context, userID int64, eng entitlement.Engine, rawURL, name string) (*site.Site, error) {
	normalized, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	count, err := s.sites.Count(ctx, userID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to count sites", err)
	}
	if !eng.CanAddSite(count) {
		metrics.RecordEntitlementDenial("add_site")
		return nil, apperrors.QuotaExceeded("add_site").
			WithFriendly("You've reached your plan's site limit. Upgrade to track more sites.")
	}

	st := &site.Site{
		ID:        uuid.New().String(),
		UserID:    userID,
		URL:       normalized,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sites.Create(ctx, st); err != nil {
		return nil, apperrors.DatabaseError("failed to create site", err)
	}
	return st, nil
}

func (s *SiteService) Get(ctx context.Context, userID int64, id string) (*site.Site, error) {
	st, err := s.sites.GetByID(ctx, userID, id)
	if err != nil {
		return nil, apperrors.NotFound("site")
	}
	return st, nil
}

func (s *SiteService) List(ctx context.Context, userID int64) ([]*site.Site, error) {
	list, err := s.sites.List(ctx, userID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list sites", err)
	}
	return list, nil
}

// Delete removes a site. Child records cascade at the storage layer.
func (s *SiteService) Delete(ctx context.Context, userID int64, id string) error {
	if _, err := s.sites.GetByID(ctx, userID, id); err != nil {
		return apperrors.NotFound("site")
	}
	if err := s.sites.Delete(ctx, userID, id); err != nil {
		return apperrors.DatabaseError("failed to delete site", err)
	}
	s.logger.WithFields(map[string]interface{}{"site_id": id}).Info("Site deleted")
	return nil
}

// AddCompetitor adds a tracked competitor under a site when the plan's
// per-site competitor limit allows another.
func (s *SiteService) AddCompetitor(ctx context.Context, userID int64, eng entitlement.Engine, siteID, rawURL, name string) (*site.Competitor, error) {
	if _, err := s.sites.GetByID(ctx, userID, siteID); err != nil {
		return nil, apperrors.NotFound("site")
	}
	normalized, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	count, err := s.sites.CountCompetitors(ctx, userID, siteID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to count competitors", err)
	}
	if !eng.CanAddCompetitor(count) {
		metrics.RecordEntitlementDenial("add_competitor")
		return nil, apperrors.QuotaExceeded("add_competitor").
			WithFriendly("You've reached your plan's competitor limit for this site. Upgrade to track more competitors.")
	}

	c := &site.Competitor{
		ID:        uuid.New().String(),
		SiteID:    siteID,
		UserID:    userID,
		URL:       normalized,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sites.CreateCompetitor(ctx, c); err != nil {
		return nil, apperrors.DatabaseError("failed to create competitor", err)
	}
	return c, nil
}

func (s *SiteService) GetCompetitor(ctx context.Context, userID int64, id string) (*site.Competitor, error) {
	c, err := s.sites.GetCompetitor(ctx, userID, id)
	if err != nil {
		return nil, apperrors.NotFound("competitor")
	}
	return c, nil
}

func (s *SiteService) ListCompetitors(ctx context.Context, userID int64, siteID string) ([]*site.Competitor, error) {
	list, err := s.sites.ListCompetitors(ctx, userID, siteID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list competitors", err)
	}
	return list, nil
}

func (s *SiteService) DeleteCompetitor(ctx context.Context, userID int64, id string) error {
	if _, err := s.sites.GetCompetitor(ctx, userID, id); err != nil {
		return apperrors.NotFound("competitor")
	}
	if err := s.sites.DeleteCompetitor(ctx, userID, id); err != nil {
		return apperrors.DatabaseError("failed to delete competitor", err)
	}
	return nil
}
