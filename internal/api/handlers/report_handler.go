package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexusretail/nexus-backend/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Executive relays the generated report text for the actor's company.
// The body is opaque; no structure is promised to clients.
func (h *ReportHandler) Executive(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	report, err := h.reportService.ExecutiveReport(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
