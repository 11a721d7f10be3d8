package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nexusretail/nexus-backend/internal/api/handlers"
	"github.com/nexusretail/nexus-backend/internal/api/middleware"
	"github.com/nexusretail/nexus-backend/internal/service"
)

type Services struct {
	ClosingService        *service.ClosingService
	ReconciliationService *service.ReconciliationService
	ImportService         *service.ImportService
	ReportService         *service.ReportService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderUserID, middleware.HeaderUserName, middleware.HeaderUserRoles, middleware.HeaderEmpresaID},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalized, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalized) > 0 {
			corsConfig.AllowOrigins = normalized
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")
	apiGroup.Use(middleware.Actor())

	if services != nil {
		if services.ClosingService != nil {
			closingHandler := handlers.NewClosingHandler(services.ClosingService)
			apiGroup.POST("/closings", closingHandler.Save)
			lojaGroup := apiGroup.Group("/lojas/:loja")
			{
				lojaGroup.GET("/closings", closingHandler.ListMonth)
				lojaGroup.GET("/closings/summary", closingHandler.MonthlySummary)
				lojaGroup.GET("/closings/:date", closingHandler.Get)
				lojaGroup.POST("/closings/:date/reopen", closingHandler.Reopen)
				lojaGroup.DELETE("/closings/:date", closingHandler.Delete)
			}
		}

		if services.ReconciliationService != nil {
			reconciliationHandler := handlers.NewReconciliationHandler(services.ReconciliationService)
			apiGroup.POST("/reconciliations", reconciliationHandler.Reconcile)
			lojaGroup := apiGroup.Group("/lojas/:loja")
			{
				lojaGroup.GET("/reconciliations/:date", reconciliationHandler.History)
				lojaGroup.GET("/reconciliations/:date/latest", reconciliationHandler.Latest)
				lojaGroup.POST("/reconciliations/:date/review", reconciliationHandler.Review)
			}
		}

		if services.ImportService != nil {
			importHandler := handlers.NewImportHandler(services.ImportService)
			apiGroup.POST("/imports/:entity", importHandler.Upload)
		}

		if services.ReportService != nil {
			reportHandler := handlers.NewReportHandler(services.ReportService)
			apiGroup.POST("/reports/executive", reportHandler.Executive)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
