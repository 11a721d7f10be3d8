package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexusretail/nexus-backend/internal/service"
)

type ImportHandler struct {
	importService *service.ImportService
}

func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// Upload receives one spreadsheet for the entity named in the path and
// returns how many rows were imported out of how many were read.
func (h *ImportHandler) Upload(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	entity := c.Param("entity")

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

	result, err := h.importService.ImportFile(c.Request.Context(), actor, entity, fileHeader.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
