package handlers

import (
	"net/http"

	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/internal/domain/user"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/utils"
	"github.com/seogenix/backend/internal/services"
)

// PlanHandler serves the plan catalog and per-account usage.
type PlanHandler struct {
	catalog plan.Catalog
	usage   *services.UsageService
	users   user.Repository
	logger  *logger.Logger
}

func NewPlanHandler(catalog plan.Catalog, usageSvc *services.UsageService, users user.Repository, log *logger.Logger) *PlanHandler {
	return &PlanHandler{catalog: catalog, usage: usageSvc, users: users, logger: log}
}

// List returns every plan in the catalog. Public.
// @Summary List plans
// @Tags Plans
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /plans [get]
func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"plans": h.catalog.All()})
}

// Current returns the account's plan with its current-period usage and
// remaining headroom.
// @Summary Current plan and usage
// @Tags Plans
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /plans/current [get]
func (h *PlanHandler) Current(w http.ResponseWriter, r *http.Request) {
	account, eng, u, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"plan":  eng.Plan(),
		"tier":  account.Tier,
		"usage": u,
		"can": map[string]bool{
			"run_audit":        eng.CanRunAudit(),
			"generate_content": eng.CanGenerateContent(),
			"optimize_content": eng.CanOptimizeContent(),
			"generate_prompts": eng.CanGeneratePrompts(),
			"track_citation":   eng.CanTrackCitations() && eng.CanTrackMoreCitations(),
		},
	})
}

// Usage returns the account's current-period usage counters.
// @Summary Current usage
// @Tags Plans
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /usage [get]
func (h *PlanHandler) Usage(w http.ResponseWriter, r *http.Request) {
	account, eng, u, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	p := eng.Plan()
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"usage":  u,
		"tier":   account.Tier,
		"limits": p.Limits,
	})
}
