// Package worker runs the background re-audit loop. Each plan tier carries
// an audit cadence; the worker re-audits any site whose latest audit is
// older than its owner's cadence allows.
package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/seogenix/backend/internal/analysis"
	"github.com/seogenix/backend/internal/domain/audit"
	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/internal/domain/site"
	"github.com/seogenix/backend/internal/domain/user"
	"github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/services"
)

// Scheduler re-audits tracked sites on their plan's cadence.
type Scheduler struct {
	cron    *cron.Cron
	sites   site.Repository
	users   user.Repository
	audits  *analysis.AuditService
	history audit.Repository
	usage   *services.UsageService
	logger  *logger.Logger
}

func NewScheduler(sites site.Repository, users user.Repository, audits *analysis.AuditService, history audit.Repository, usageSvc *services.UsageService, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		sites:   sites,
		users:   users,
		audits:  audits,
		history: history,
		usage:   usageSvc,
		logger:  log,
	}
}

// Start registers the nightly sweep and launches the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 3 * * *", s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Audit scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Audit scheduler stopped")
}

// cadenceInterval maps an audit frequency onto the minimum age before a
// site is due again.
func cadenceInterval(f plan.AuditFrequency) time.Duration {
	switch f {
	case plan.AuditDaily:
		return 24 * time.Hour
	case plan.AuditWeekly:
		return 7 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

// sweep walks every tracked site and re-audits the stale ones. Scheduled
// audits respect the same monthly quota as manual ones.
func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	sites, err := s.sites.ListAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Scheduled sweep could not list sites")
		return
	}

	ran := 0
	for _, st := range sites {
		if s.auditIfDue(ctx, st) {
			ran++
		}
	}
	s.logger.WithFields(map[string]interface{}{
		"sites":      len(sites),
		"audits_run": ran,
	}).Info("Scheduled audit sweep finished")
}

func (s *Scheduler) auditIfDue(ctx context.Context, st *site.Site) bool {
	owner, err := s.users.GetByID(ctx, st.UserID)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"site_id": st.ID,
			"error":   err.Error(),
		}).Warn("Skipping site with missing owner")
		return false
	}

	eng, _, err := s.usage.Engine(ctx, owner)
	if err != nil {
		s.logger.WithError(err).Warn("Skipping site, could not build entitlements")
		return false
	}

	interval := cadenceInterval(eng.AuditFrequency())
	latest, err := s.history.Latest(ctx, owner.ID, st.ID)
	if err != nil && !errors.IsNotFound(err) {
		s.logger.WithError(err).Warn("Skipping site, could not read audit history")
		return false
	}
	if latest != nil && time.Since(latest.CreatedAt) < interval {
		return false
	}
	if !eng.CanRunAudit() {
		return false
	}

	if _, err := s.audits.Run(ctx, owner.ID, st.ID, st.URL); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"site_id": st.ID,
			"error":   err.Error(),
		}).Warn("Scheduled audit failed")
		return false
	}
	if err := s.usage.RecordAudit(ctx, owner.ID); err != nil {
		s.logger.WithError(err).Error("Failed to record scheduled audit usage")
	}
	return true
}
