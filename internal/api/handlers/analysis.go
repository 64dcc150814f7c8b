package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/seogenix/backend/internal/analysis"
	"github.com/seogenix/backend/internal/api/dto"
	"github.com/seogenix/backend/internal/domain/citation"
	"github.com/seogenix/backend/internal/domain/entity"
	"github.com/seogenix/backend/internal/domain/markup"
	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/internal/domain/summary"
	"github.com/seogenix/backend/internal/domain/usage"
	"github.com/seogenix/backend/internal/domain/user"
	"github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/metrics"
	"github.com/seogenix/backend/internal/pkg/utils"
	"github.com/seogenix/backend/internal/pkg/validator"
	"github.com/seogenix/backend/internal/services"
)

// AnalysisHandler exposes the AI analysis endpoints: content, entities,
// schema, summaries, prompts, competitors and citations. Every endpoint
// checks the plan entitlement before doing any work.
type AnalysisHandler struct {
	content     *analysis.ContentService
	entities    *analysis.EntityService
	schemas     *analysis.SchemaService
	summaries   *analysis.SummaryService
	prompts     *analysis.PromptService
	audits      *analysis.AuditService
	citations   *analysis.CitationService
	entityRepo  entity.Repository
	markupRepo  markup.Repository
	summaryRepo summary.Repository
	citRepo     citation.Repository
	sites       *services.SiteService
	usage       *services.UsageService
	users       user.Repository
	logger      *logger.Logger
	validator   *validator.Validator
}

// AnalysisDeps bundles the constructor arguments.
type AnalysisDeps struct {
	Content     *analysis.ContentService
	Entities    *analysis.EntityService
	Schemas     *analysis.SchemaService
	Summaries   *analysis.SummaryService
	Prompts     *analysis.PromptService
	Audits      *analysis.AuditService
	Citations   *analysis.CitationService
	EntityRepo  entity.Repository
	MarkupRepo  markup.Repository
	SummaryRepo summary.Repository
	CitRepo     citation.Repository
	Sites       *services.SiteService
	Usage       *services.UsageService
	Users       user.Repository
	Logger      *logger.Logger
	Validator   *validator.Validator
}

func NewAnalysisHandler(d AnalysisDeps) *AnalysisHandler {
	return &AnalysisHandler{
		content:     d.Content,
		entities:    d.Entities,
		schemas:     d.Schemas,
		summaries:   d.Summaries,
		prompts:     d.Prompts,
		audits:      d.Audits,
		citations:   d.Citations,
		entityRepo:  d.EntityRepo,
		markupRepo:  d.MarkupRepo,
		summaryRepo: d.SummaryRepo,
		citRepo:     d.CitRepo,
		sites:       d.Sites,
		usage:       d.Usage,
		users:       d.Users,
		logger:      d.Logger,
		validator:   d.Validator,
	}
}

// AnalyzeContent scores pasted content, subject to the content generation
// quota.
// @Summary Analyze content
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeContentRequest true "Content"
// @Success 200 {object} analysis.ContentAnalysis
// @Failure 403 {object} utils.ErrorResponse
// @Router /analysis/content [post]
func (h *AnalysisHandler) AnalyzeContent(w http.ResponseWriter, r *http.Request) {
	account, eng, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var req dto.AnalyzeContentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if !eng.CanGenerateContent() {
		metrics.RecordEntitlementDenial("generate_content")
		writeAppError(w, errors.QuotaExceeded("content analyses"))
		return
	}

	result, err := h.content.Analyze(r.Context(), req.Content)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if err := h.usage.Record(r.Context(), account.ID, usage.CounterContentGenerations); err != nil {
		h.logger.WithError(err).Error("Failed to record content usage")
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

// AnalyzeEntities runs entity coverage analysis for a site. Requires the
// entity analysis feature.
// @Summary Analyze entity coverage
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeEntitiesRequest true "Target"
// @Success 200 {object} analysis.EntityAnalysis
// @Failure 403 {object} utils.ErrorResponse
// @Router /analysis/entities [post]
func (h *AnalysisHandler) AnalyzeEntities(w http.ResponseWriter, r *http.Request) {
	account, eng, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var req dto.AnalyzeEntitiesRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if !eng.IsFeatureEnabled(plan.FeatureEntityAnalysis) {
		metrics.RecordEntitlementDenial("entity_analysis")
		writeAppError(w, errors.FeatureLocked("entity_analysis"))
		return
	}

	st, err := h.sites.Get(r.Context(), account.ID, req.SiteID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	result, err := h.entities.Analyze(r.Context(), account.ID, st.ID, st.URL)
	if err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

// ListEntities returns a site's stored entity set.
// @Summary List entities for a site
// @Tags Analysis
// @Produce json
// @Param id path string true "Site ID"
// @Success 200 {object} map[string]interface{}
// @Router /sites/{id}/entities [get]
func (h *AnalysisHandler) ListEntities(w http.ResponseWriter, r *http.Request) {
	account, _, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	list, err := h.entityRepo.ListBySite(r.Context(), account.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	if list == nil {
		list = []*entity.Entity{}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"entities": list})
}

// GenerateSchema generates JSON-LD markup. Requires a plan with schema
// generation.
// @Summary Generate schema markup
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.GenerateSchemaRequest true "Target"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponse
// @Router /analysis/schema [post]
func (h *AnalysisHandler) GenerateSchema(w http.ResponseWriter, r *http.Request) {
	account, eng, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var req dto.GenerateSchemaRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if eng.SchemaLevel() == plan.SchemaNone {
		metrics.RecordEntitlementDenial("generate_schema")
		writeAppError(w, errors.FeatureLocked("schema_generation"))
		return
	}

	rec, err := h.schemas.Generate(r.Context(), account.ID, req.SiteID, req.URL, req.SchemaType)
	if err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"schema":      rec.JSONLD,
		"schema_type": rec.SchemaType,
		"url":         rec.URL,
		"id":          rec.ID,
	})
}

// ListSchemas returns a site's stored schema artifacts.
// @Summary List schemas for a site
// @Tags Analysis
// @Produce json
// @Param id path string true "Site ID"
// @Success 200 {object} map[string]interface{}
// @Router /sites/{id}/schemas [get]
func (h *AnalysisHandler) ListSchemas(w http.ResponseWriter, r *http.Request) {
	account, _, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := h.markupRepo.ListBySite(r.Context(), account.ID, chi.URLParam(r, "id"), limit)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if list == nil {
		list = []*markup.Schema{}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"schemas": list})
}

// GenerateSummary generates a citable summary for a site. Requires the LLM
// summaries feature.
// @Summary Generate a summary
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.GenerateSummaryRequest true "Target"
// @Success 200 {object} analysis.SummaryResult
// @Failure 403 {object} utils.ErrorResponse
// @Router /analysis/summaries [post]
func (h *AnalysisHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	account, eng, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var req dto.GenerateSummaryRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if !eng.IsFeatureEnabled(plan.FeatureLLMSummaries) {
		metrics.RecordEntitlementDenial("generate_summary")
		writeAppError(w, errors.FeatureLocked("llm_summaries"))
		return
	}

	st, err := h.sites.Get(r.Context(), account.ID, req.SiteID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	result, err := h.summaries.Generate(r.Context(), account.ID, st.ID, st.URL, req.SummaryType)
	if err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

// ListSummaries returns a site's stored summaries.
// @Summary List summaries for a site
// @Tags Analysis
// @Produce json
// @Param id path string true "Site ID"
// @Success 200 {object} map[string]interface{}
// @Router /sites/{id}/summaries [get]
func (h *AnalysisHandler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	account, _, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := h.summaryRepo.ListBySite(r.Context(), account.ID, chi.URLParam(r, "id"), limit)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if list == nil {
		list = []*summary.Summary{}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"summaries": list})
}

// GeneratePrompts generates search prompt suggestions, subject to the
// prompt quota.
// @Summary Generate prompt suggestions
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.GeneratePromptsRequest true "Topic"
// @Success 200 {object} analysis.PromptResult
// @Failure 403 {object} utils.ErrorResponse
// @Router /analysis/prompts [post]
func (h *AnalysisHandler) GeneratePrompts(w http.ResponseWriter, r *http.Request) {
	account, eng, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var req dto.GeneratePromptsRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if !eng.CanGeneratePrompts() {
		metrics.RecordEntitlementDenial("generate_prompts")
		writeAppError(w, errors.QuotaExceeded("prompt suggestions"))
		return
	}

	result, err := h.prompts.Generate(r.Context(), req.Topic)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if err := h.usage.Record(r.Context(), account.ID, usage.CounterPromptSuggestions); err != nil {
		h.logger.WithError(err).Error("Failed to record prompt usage")
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

// AnalyzeCompetitor audits a tracked competitor. Requires the competitive
// analysis feature.
// @Summary Analyze a competitor
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeCompetitorRequest true "Target"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponse
// @Router /analysis/competitors [post]
func (h *AnalysisHandler) AnalyzeCompetitor(w http.ResponseWriter, r *http.Request) {
	account, eng, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var req dto.AnalyzeCompetitorRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if !eng.IsFeatureEnabled(plan.FeatureCompetitiveAnalysis) {
		metrics.RecordEntitlementDenial("competitive_analysis")
		writeAppError(w, errors.FeatureLocked("competitive_analysis"))
		return
	}

	comp, err := h.sites.GetCompetitor(r.Context(), account.ID, req.CompetitorID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	a, method, contentLen, err := h.audits.RunCompetitor(r.Context(), account.ID, comp.ID, comp.URL)
	if err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"audit":           a,
		"overall_score":   a.Overall(),
		"analysis_method": method,
		"content_length":  contentLen,
	})
}

// TrackCitations runs a citation check for a site, subject to the citation
// mode and quota.
// @Summary Track citations
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.TrackCitationsRequest true "Target"
// @Success 200 {object} analysis.CitationReport
// @Failure 403 {object} utils.ErrorResponse
// @Router /analysis/citations [post]
func (h *AnalysisHandler) TrackCitations(w http.ResponseWriter, r *http.Request) {
	account, eng, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var req dto.TrackCitationsRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if !eng.CanTrackCitations() || !eng.CanTrackMoreCitations() {
		metrics.RecordEntitlementDenial("track_citation")
		writeAppError(w, errors.QuotaExceeded("citation checks").
			WithFriendly("Citation tracking isn't available right now on your plan. Upgrade for more frequent checks."))
		return
	}

	st, err := h.sites.Get(r.Context(), account.ID, req.SiteID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	report, err := h.citations.Track(r.Context(), account.ID, st.ID, st.URL)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if err := h.usage.Record(r.Context(), account.ID, usage.CounterCitations); err != nil {
		h.logger.WithError(err).Error("Failed to record citation usage")
	}
	utils.WriteJSON(w, http.StatusOK, report)
}

// ListCitations returns a site's stored citations.
// @Summary List citations for a site
// @Tags Analysis
// @Produce json
// @Param id path string true "Site ID"
// @Success 200 {object} map[string]interface{}
// @Router /sites/{id}/citations [get]
func (h *AnalysisHandler) ListCitations(w http.ResponseWriter, r *http.Request) {
	account, _, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := h.citRepo.ListBySite(r.Context(), account.ID, chi.URLParam(r, "id"), limit)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if list == nil {
		list = []*citation.Citation{}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"citations": list})
}
