package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexusretail/nexus-backend/internal/domain"
)

// Identity headers injected by the edge proxy. Authentication itself
// happens upstream; the backend trusts these values.
const (
	HeaderUserID    = "X-User-Id"
	HeaderUserName  = "X-User-Name"
	HeaderUserRoles = "X-User-Roles"
	HeaderEmpresaID = "X-Empresa-Id"
)

const actorContextKey = "actor"

// Actor resolves the identity headers into a domain.Actor and rejects
// requests that arrive without one.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		empresaRaw := strings.TrimSpace(c.GetHeader(HeaderEmpresaID))
		if userID == "" || empresaRaw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing identity headers"})
			return
		}

		empresaID, err := strconv.ParseInt(empresaRaw, 10, 64)
		if err != nil || empresaID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid empresa id"})
			return
		}

		var roles []domain.Role
		for _, label := range strings.Split(c.GetHeader(HeaderUserRoles), ",") {
			if role, ok := domain.ParseRole(label); ok {
				roles = append(roles, role)
			}
		}
		if len(roles) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no recognized role"})
			return
		}

		c.Set(actorContextKey, domain.Actor{
			UserID:    userID,
			Nome:      strings.TrimSpace(c.GetHeader(HeaderUserName)),
			EmpresaID: empresaID,
			Roles:     roles,
		})

		c.Next()
	}
}

// ActorFrom returns the actor resolved by the Actor middleware.
func ActorFrom(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}
