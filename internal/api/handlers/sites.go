package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seogenix/backend/internal/api/dto"
	"github.com/seogenix/backend/internal/domain/site"
	"github.com/seogenix/backend/internal/domain/user"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/utils"
	"github.com/seogenix/backend/internal/pkg/validator"
	"github.com/seogenix/backend/internal/services"
)

// SiteHandler handles site and competitor CRUD.
type SiteHandler struct {
	sites     *services.SiteService
	usage     *services.UsageService
	users     user.Repository
	logger    *logger.Logger
	validator *validator.Validator
}

func NewSiteHandler(sites *services.SiteService, usageSvc *services.UsageService, users user.Repository, log *logger.Logger, val *validator.Validator) *SiteHandler {
	return &SiteHandler{
		sites:     sites,
		usage:     usageSvc,
		users:     users,
		logger:    log,
		validator: val,
	}
}

// Create adds a site, subject to the plan's site limit.
// @Summary Add a site
// @Tags Sites
// @Accept json
// @Produce json
// @Param request body dto.CreateSiteRequest true "Site"
// @Success 201 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponse
// @Router /sites [post]
func (h *SiteHandler) Create(w http.ResponseWriter, r *http.Request) {
	account, eng, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var req dto.CreateSiteRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	st, err := h.sites.Create(r.Context(), account.ID, eng, req.URL, req.Name)
	if err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{"site": st})
}

// List returns the account's sites.
// @Summary List sites
// @Tags Sites
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /sites [get]
func (h *SiteHandler) List(w http.ResponseWriter, r *http.Request) {
	account, eng, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	list, err := h.sites.List(r.Context(), account.ID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if list == nil {
		list = []*site.Site{}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"sites":      list,
		"site_limit": eng.SiteLimit(),
	})
}

// Get returns one site.
// @Summary Get a site
// @Tags Sites
// @Produce json
// @Param id path string true "Site ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Router /sites/{id} [get]
func (h *SiteHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, _, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	st, err := h.sites.Get(r.Context(), account.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"site": st})
}

// Delete removes a site and its child records.
// @Summary Delete a site
// @Tags Sites
// @Param id path string true "Site ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /sites/{id} [delete]
func (h *SiteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	account, _, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	if err := h.sites.Delete(r.Context(), account.ID, chi.URLParam(r, "id")); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateCompetitor adds a tracked competitor under a site.
// @Summary Add a competitor
// @Tags Sites
// @Accept json
// @Produce json
// @Param id path string true "Site ID"
// @Param request body dto.CreateCompetitorRequest true "Competitor"
// @Success 201 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponse
// @Router /sites/{id}/competitors [post]
func (h *SiteHandler) CreateCompetitor(w http.ResponseWriter, r *http.Request) {
	account, eng, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var req dto.CreateCompetitorRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	c, err := h.sites.AddCompetitor(r.Context(), account.ID, eng, chi.URLParam(r, "id"), req.URL, req.Name)
	if err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{"competitor": c})
}

// ListCompetitors returns a site's tracked competitors.
// @Summary List competitors
// @Tags Sites
// @Produce json
// @Param id path string true "Site ID"
// @Success 200 {object} map[string]interface{}
// @Router /sites/{id}/competitors [get]
func (h *SiteHandler) ListCompetitors(w http.ResponseWriter, r *http.Request) {
	account, eng, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	list, err := h.sites.ListCompetitors(r.Context(), account.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	if list == nil {
		list = []*site.Competitor{}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"competitors":      list,
		"competitor_limit": eng.CompetitorLimit(),
	})
}

// DeleteCompetitor removes a tracked competitor.
// @Summary Delete a competitor
// @Tags Sites
// @Param id path string true "Site ID"
// @Param competitorID path string true "Competitor ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /sites/{id}/competitors/{competitorID} [delete]
func (h *SiteHandler) DeleteCompetitor(w http.ResponseWriter, r *http.Request) {
	account, _, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	if err := h.sites.DeleteCompetitor(r.Context(), account.ID, chi.URLParam(r, "competitorID")); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
