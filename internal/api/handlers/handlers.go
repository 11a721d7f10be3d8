// Package handlers exposes the HTTP surface. Handlers stay thin: parse
// the request, call one service method, translate domain errors.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nexusretail/nexus-backend/internal/api/middleware"
	"github.com/nexusretail/nexus-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// respondError maps the domain error taxonomy onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "operation not allowed for this role"})
	case errors.Is(err, domain.ErrRecordLocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func actorOrAbort(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing actor"})
		return domain.Actor{}, false
	}
	return actor, true
}

func lojaParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("loja"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store id"})
		return 0, false
	}
	return id, true
}

func dateParam(c *gin.Context) (time.Time, bool) {
	t, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

// mesQuery reads the ?mes=YYYY-MM query, defaulting to the current month.
func mesQuery(c *gin.Context) (int, time.Month, bool) {
	raw := c.DefaultQuery("mes", time.Now().Format("2006-01"))
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mes, expected YYYY-MM"})
		return 0, 0, false
	}
	return t.Year(), t.Month(), true
}
