package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/seogenix/backend/internal/api/handlers"
	"github.com/seogenix/backend/internal/api/middleware"
	"github.com/seogenix/backend/internal/config"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/metrics"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Preferences *handlers.PreferencesHandler
	Site        *handlers.SiteHandler
	Audit       *handlers.AuditHandler
	Analysis    *handlers.AnalysisHandler
	Chatbot     *handlers.ChatbotHandler
	Plan        *handlers.PlanHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(50, 100))
	r.Use(metrics.Middleware)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
		r.Handle("/metrics", metrics.Handler())

		r.Get("/health", h.Health.Healthz)
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)

		r.Post("/api/v1/auth/register", h.Auth.Register)
		r.Post("/api/v1/auth/login", h.Auth.Login)
		r.Post("/api/v1/auth/refresh", h.Auth.Refresh)

		r.Get("/api/v1/plans", h.Plan.List)
		r.Post("/api/v1/landing-chat", h.Chatbot.Landing)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Auth.JWTSecret))

		r.Get("/api/v1/auth/me", h.Auth.Me)
		r.Get("/api/v1/preferences", h.Preferences.Get)
		r.Put("/api/v1/preferences", h.Preferences.Update)

		r.Get("/api/v1/plans/current", h.Plan.Current)
		r.Get("/api/v1/usage", h.Plan.Usage)

		r.Route("/api/v1/sites", func(r chi.Router) {
			r.Get("/", h.Site.List)
			r.Post("/", h.Site.Create)
			r.Get("/{id}", h.Site.Get)
			r.Delete("/{id}", h.Site.Delete)

			r.Get("/{id}/audits", h.Audit.List)
			r.Get("/{id}/audits/latest", h.Audit.Latest)
			r.Get("/{id}/entities", h.Analysis.ListEntities)
			r.Get("/{id}/schemas", h.Analysis.ListSchemas)
			r.Get("/{id}/summaries", h.Analysis.ListSummaries)
			r.Get("/{id}/citations", h.Analysis.ListCitations)

			r.Get("/{id}/competitors", h.Site.ListCompetitors)
			r.Post("/{id}/competitors", h.Site.CreateCompetitor)
			r.Delete("/{id}/competitors/{competitorID}", h.Site.DeleteCompetitor)
		})

		// Analysis endpoints cost an oracle call each, so they carry a
		// tighter per-account limiter.
		r.Group(func(r chi.Router) {
			r.Use(middleware.UserRateLimit(2, 5))

			r.Post("/api/v1/audits/run", h.Audit.Run)
			r.Post("/api/v1/analysis/content", h.Analysis.AnalyzeContent)
			r.Post("/api/v1/analysis/entities", h.Analysis.AnalyzeEntities)
			r.Post("/api/v1/analysis/schema", h.Analysis.GenerateSchema)
			r.Post("/api/v1/analysis/summaries", h.Analysis.GenerateSummary)
			r.Post("/api/v1/analysis/prompts", h.Analysis.GeneratePrompts)
			r.Post("/api/v1/analysis/competitors", h.Analysis.AnalyzeCompetitor)
			r.Post("/api/v1/analysis/citations", h.Analysis.TrackCitations)
			r.Post("/api/v1/chatbot", h.Chatbot.Product)
		})
	})

	return r
}
