package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexusretail/nexus-backend/internal/api"
	"github.com/nexusretail/nexus-backend/internal/cache"
	"github.com/nexusretail/nexus-backend/internal/config"
	"github.com/nexusretail/nexus-backend/internal/parse"
	"github.com/nexusretail/nexus-backend/internal/repository/postgres"
	"github.com/nexusretail/nexus-backend/internal/service"
	"github.com/nexusretail/nexus-backend/internal/storage"
	"github.com/nexusretail/nexus-backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	summaryCache, err := cache.NewSummaryCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("summary cache unavailable, falling back to noop")
		summaryCache = cache.NewNoopSummaryCache()
	}

	var archive storage.ObjectStorage = storage.Noop{}
	if cfg.Archive.Enabled {
		s3, err := storage.NewS3Client(cfg.Archive)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("failed to configure upload archive")
		}
		archive = s3
	}

	closings := postgres.NewClosingRepository(db)
	recons := postgres.NewReconciliationRepository(db)
	finance := postgres.NewFinanceRepository(db)
	lookups := postgres.NewLookupRepository(db)

	services := &api.Services{
		ClosingService:        service.NewClosingService(closings, summaryCache),
		ReconciliationService: service.NewReconciliationService(closings, recons, archive),
		ImportService:         service.NewImportService(finance, lookups, archive, parse.ParseDateLocale(cfg.App.DateLocale)),
		ReportService:         service.NewReportService(service.NewHTTPReportGateway(cfg.Report)),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Log.Info().Msg("server exited")
}
