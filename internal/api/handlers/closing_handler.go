package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexusretail/nexus-backend/internal/closing"
	"github.com/nexusretail/nexus-backend/internal/service"
)

type ClosingHandler struct {
	closingService *service.ClosingService
}

func NewClosingHandler(closingService *service.ClosingService) *ClosingHandler {
	return &ClosingHandler{closingService: closingService}
}

type saveClosingRequest struct {
	LojaID int64          `json:"loja_id" binding:"required"`
	Data   string         `json:"data" binding:"required"`
	Action string         `json:"action" binding:"required"`
	Campos map[string]any `json:"campos"`
}

// Save handles both the draft save and the close of a day's cash register.
func (h *ClosingHandler) Save(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req saveClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	action, ok := closing.ParseAction(req.Action)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be SAVE or CLOSE"})
		return
	}

	data, err := time.Parse(dateLayout, req.Data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data, expected YYYY-MM-DD"})
		return
	}

	rec, err := h.closingService.Save(c.Request.Context(), actor, req.LojaID, data, req.Campos, action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Get returns one day's closing for a store.
func (h *ClosingHandler) Get(c *gin.Context) {
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

	rec, err := h.closingService.Get(c.Request.Context(), actor, lojaID, data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// ListMonth returns the store's closings for one month.
func (h *ClosingHandler) ListMonth(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	lojaID, ok := lojaParam(c)
	if !ok {
		return
	}
	year, month, ok := mesQuery(c)
	if !ok {
		return
	}

	list, err := h.closingService.ListMonth(c.Request.Context(), actor, lojaID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"closings": list})
}

// Reopen moves a locked day back to REABERTO.
func (h *ClosingHandler) Reopen(c *gin.Context) {
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

	rec, err := h.closingService.Reopen(c.Request.Context(), actor, lojaID, data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Delete soft-deletes one day's closing.
func (h *ClosingHandler) Delete(c *gin.Context) {
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

	if err := h.closingService.Delete(c.Request.Context(), actor, lojaID, data); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MonthlySummary returns the cached dashboard aggregate for one month.
func (h *ClosingHandler) MonthlySummary(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	lojaID, ok := lojaParam(c)
	if !ok {
		return
	}
	year, month, ok := mesQuery(c)
	if !ok {
		return
	}

	summary, err := h.closingService.MonthlySummary(c.Request.Context(), actor, lojaID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
