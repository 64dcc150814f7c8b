package services

import (
	"context"
	"time"

	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/internal/domain/usage"
	"github.com/seogenix/backend/internal/domain/user"
	"github.com/seogenix/backend/internal/entitlement"
	apperrors "github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/logger"
)

// UsageService reads and advances per-account usage counters. Monthly reset
// is lazy: the first read after a UTC calendar month boundary rewrites the
// record with zeroed counters before returning it. No background job is
// involved.
type UsageService struct {
	usages  usage.Repository
	users   user.Repository
	catalog plan.Catalog
	logger  *logger.Logger
	now     func() time.Time
}

func NewUsageService(usages usage.Repository, users user.Repository, catalog plan.Catalog, log *logger.Logger) *UsageService {
	return &UsageService{
		usages:  usages,
		users:   users,
		catalog: catalog,
		logger:  log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// periodStart truncates a time to the start of its UTC calendar month.
func periodStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Get returns the account's current-period usage, rolling the record over
// first when the stored period is older than the current month.
func (s *UsageService) Get(ctx context.Context, userID int64) (*usage.Usage, error) {
	u, err := s.usages.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to load usage", err)
	}

	current := periodStart(s.now())
	if u.PeriodStart.Before(current) {
		u = &usage.Usage{
			UserID:      userID,
			LastAuditAt: u.LastAuditAt,
			PeriodStart: current,
			UpdatedAt:   s.now(),
		}
		if err := s.usages.Save(ctx, u); err != nil {
			return nil, apperrors.DatabaseError("failed to reset usage period", err)
		}
		s.logger.WithFields(map[string]interface{}{
			"user_id": userID,
			"period":  current.Format("2006-01"),
		}).Info("Usage counters rolled over")
	}
	return u, nil
}

// Engine builds the entitlement engine for an account from its plan tier
// and current-period usage.
func (s *UsageService) Engine(ctx context.Context, account *user.User) (entitlement.Engine, *usage.Usage, error) {
	u, err := s.Get(ctx, account.ID)
	if err != nil {
		return entitlement.Engine{}, nil, err
	}
	return entitlement.New(s.catalog.Get(account.Tier), *u), u, nil
}

// RecordAudit increments the audit counter and stamps the last audit time.
func (s *UsageService) RecordAudit(ctx context.Context, userID int64) error {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	u.AuditsThisMonth++
	u.LastAuditAt = s.now()
	u.UpdatedAt = s.now()
	if err := s.usages.Save(ctx, u); err != nil {
		return apperrors.DatabaseError("failed to record audit usage", err)
	}
	return nil
}

// Record increments one metered counter for the current period.
func (s *UsageService) Record(ctx context.Context, userID int64, counter usage.Counter) error {
	if counter == usage.CounterAudits {
		return s.RecordAudit(ctx, userID)
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	if err := s.usages.Increment(ctx, userID, counter); err != nil {
		return apperrors.DatabaseError("failed to record usage", err)
	}
	return nil
}
