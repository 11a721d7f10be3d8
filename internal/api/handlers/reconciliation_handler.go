package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexusretail/nexus-backend/internal/service"
)

type ReconciliationHandler struct {
	reconciliationService *service.ReconciliationService
}

func NewReconciliationHandler(reconciliationService *service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationService: reconciliationService}
}

// Reconcile receives a PDV export as multipart form data and runs one
// reconciliation against the store's closing of the day.
func (h *ReconciliationHandler) Reconcile(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	lojaID, err := strconv.ParseInt(c.PostForm("loja_id"), 10, 64)
	if err != nil || lojaID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid loja_id"})
		return
	}

	data, err := time.Parse(dateLayout, c.PostForm("data"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data, expected YYYY-MM-DD"})
		return
	}

	valueColumn := c.PostForm("value_column")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload"})
		return
	}
	defer file.Close()

	rec, err := h.reconciliationService.Reconcile(c.Request.Context(), actor, lojaID, data, fileHeader.Filename, file, valueColumn)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// History lists every reconciliation attempt for a store/date, newest first.
func (h *ReconciliationHandler) History(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	lojaID, ok := lojaParam(c)
	if !ok {
		return
	}
	data, ok := dateParam(c)
	if !ok {
		return
	}

	list, err := h.reconciliationService.History(c.Request.Context(), actor, lojaID, data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reconciliations": list})
}

// Latest returns the most recent attempt, which carries the day's current
// reconciliation status.
func (h *ReconciliationHandler) Latest(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	lojaID, ok := lojaParam(c)
	if !ok {
		return
	}
	data, ok := dateParam(c)
	if !ok {
		return
	}

	rec, err := h.reconciliationService.Latest(c.Request.Context(), actor, lojaID, data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Review stamps the latest reconciliation outcome onto the closing status.
func (h *ReconciliationHandler) Review(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	lojaID, ok := lojaParam(c)
	if !ok {
		return
	}
	data, ok := dateParam(c)
	if !ok {
		return
	}

	rec, err := h.reconciliationService.Review(c.Request.Context(), actor, lojaID, data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}
