package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/seogenix/backend/internal/analysis"
	"github.com/seogenix/backend/internal/api/dto"
	"github.com/seogenix/backend/internal/domain/audit"
	"github.com/seogenix/backend/internal/domain/user"
	"github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/metrics"
	"github.com/seogenix/backend/internal/pkg/utils"
	"github.com/seogenix/backend/internal/pkg/validator"
	"github.com/seogenix/backend/internal/services"
)

// AuditHandler runs visibility audits and serves audit history.
type AuditHandler struct {
	audits    *analysis.AuditService
	auditRepo audit.Repository
	sites     *services.SiteService
	usage     *services.UsageService
	users     user.Repository
	logger    *logger.Logger
	validator *validator.Validator
}

func NewAuditHandler(audits *analysis.AuditService, auditRepo audit.Repository, sites *services.SiteService, usageSvc *services.UsageService, users user.Repository, log *logger.Logger, val *validator.Validator) *AuditHandler {
	return &AuditHandler{
		audits:    audits,
		auditRepo: auditRepo,
		sites:     sites,
		usage:     usageSvc,
		users:     users,
		logger:    log,
		validator: val,
	}
}

// Run audits a site, subject to the plan's monthly audit quota.
// @Summary Run a visibility audit
// @Tags Audits
// @Accept json
// @Produce json
// @Param request body dto.RunAuditRequest true "Audit target"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponse
// @Router /audits/run [post]
func (h *AuditHandler) Run(w http.ResponseWriter, r *http.Request) {
	account, eng, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var req dto.RunAuditRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if !eng.CanRunAudit() {
		metrics.RecordEntitlementDenial("run_audit")
		writeAppError(w, errors.QuotaExceeded("audits").
			WithFriendly("You've used all of this month's audits. Upgrade for more frequent auditing."))
		return
	}

	st, err := h.sites.Get(r.Context(), account.ID, req.SiteID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	a, err := h.audits.Run(r.Context(), account.ID, st.ID, st.URL)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if err := h.usage.RecordAudit(r.Context(), account.ID); err != nil {
		h.logger.WithError(err).Error("Failed to record audit usage")
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"audit":         a,
		"overall_score": a.Overall(),
	})
}

// List returns a site's audit history, most recent first.
// @Summary List audits for a site
// @Tags Audits
// @Produce json
// @Param id path string true "Site ID"
// @Param limit query int false "Max results"
// @Success 200 {object} map[string]interface{}
// @Router /sites/{id}/audits [get]
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	account, _, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := h.auditRepo.ListBySite(r.Context(), account.ID, chi.URLParam(r, "id"), limit)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if list == nil {
		list = []*audit.Audit{}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"audits": list})
}

// Latest returns a site's most recent audit.
// @Summary Latest audit for a site
// @Tags Audits
// @Produce json
// @Param id path string true "Site ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Router /sites/{id}/audits/latest [get]
func (h *AuditHandler) Latest(w http.ResponseWriter, r *http.Request) {
	account, _, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	a, err := h.auditRepo.Latest(r.Context(), account.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"audit":         a,
		"overall_score": a.Overall(),
	})
}
