package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/seogenix/backend/internal/analysis"
	"github.com/seogenix/backend/internal/api/handlers"
	"github.com/seogenix/backend/internal/api/router"
	"github.com/seogenix/backend/internal/config"
	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/internal/fetch"
	"github.com/seogenix/backend/internal/oracle"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/validator"
	"github.com/seogenix/backend/internal/repository/sqlite"
	"github.com/seogenix/backend/internal/services"
	"github.com/seogenix/backend/internal/worker"
	"github.com/seogenix/backend/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := sqlite.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := sqlite.RunMigrations(db, migrations.GetFS()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		log.Fatalf("Failed to load plan catalog: %v", err)
	}

	// Repositories
	userRepo := sqlite.NewUserRepository(db)
	usageRepo := sqlite.NewUsageRepository(db)
	siteRepo := sqlite.NewSiteRepository(db)
	auditRepo := sqlite.NewAuditRepository(db)
	citationRepo := sqlite.NewCitationRepository(db)
	entityRepo := sqlite.NewEntityRepository(db)
	summaryRepo := sqlite.NewSummaryRepository(db)
	markupRepo := sqlite.NewMarkupRepository(db)

	// Shared infrastructure
	val := validator.New()
	fetcher := fetch.New(cfg.Fetch, log)
	textOracle := oracle.NewOpenAI(cfg.Oracle, log)

	// Services
	authService := services.NewAuthService(userRepo, cfg.Auth, log)
	usageService := services.NewUsageService(usageRepo, userRepo, catalog, log)
	siteService := services.NewSiteService(siteRepo, log)
	auditService := analysis.NewAuditService(fetcher, textOracle, auditRepo, log)
	contentService := analysis.NewContentService(fetcher, textOracle, log)
	entityService := analysis.NewEntityService(fetcher, textOracle, entityRepo, log)
	schemaService := analysis.NewSchemaService(fetcher, textOracle, markupRepo, log)
	summaryService := analysis.NewSummaryService(fetcher, textOracle, summaryRepo, log)
	promptService := analysis.NewPromptService(fetcher, textOracle, log)
	citationService := analysis.NewCitationService(fetcher, textOracle, citationRepo, log)
	chatbotService := analysis.NewChatbotService(textOracle, siteRepo, auditRepo, citationRepo, entityRepo, log)

	// Handlers
	h := &router.Handlers{
		Health:      handlers.NewHealthHandler(db, log),
		Auth:        handlers.NewAuthHandler(authService, userRepo, cfg, log, val),
		Preferences: handlers.NewPreferencesHandler(userRepo, log, val),
		Site:        handlers.NewSiteHandler(siteService, usageService, userRepo, log, val),
		Audit:       handlers.NewAuditHandler(auditService, auditRepo, siteService, usageService, userRepo, log, val),
		Analysis: handlers.NewAnalysisHandler(handlers.AnalysisDeps{
			Content:     contentService,
			Entities:    entityService,
			Schemas:     schemaService,
			Summaries:   summaryService,
			Prompts:     promptService,
			Audits:      auditService,
			Citations:   citationService,
			EntityRepo:  entityRepo,
			MarkupRepo:  markupRepo,
			SummaryRepo: summaryRepo,
			CitRepo:     citationRepo,
			Sites:       siteService,
			Usage:       usageService,
			Users:       userRepo,
			Logger:      log,
			Validator:   val,
		}),
		Chatbot: handlers.NewChatbotHandler(chatbotService, usageService, userRepo, log, val),
		Plan:    handlers.NewPlanHandler(catalog, usageService, userRepo, log),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	var scheduler *worker.Scheduler
	if cfg.Scheduler.Enabled {
		scheduler = worker.NewScheduler(siteRepo, userRepo, auditService, auditRepo, usageService, log)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
	}

	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	if scheduler != nil {
		scheduler.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.ErrorWithErr(err, "Forced shutdown")
	}
	log.Info("Server stopped")
}

func loadCatalog(cfg *config.Config) (plan.Catalog, error) {
	if cfg.PlansPath != "" {
		return plan.LoadCatalog(cfg.PlansPath)
	}
	return plan.DefaultCatalog()
}
