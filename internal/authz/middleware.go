package authz

import (
	"net/http"

	"grocery-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

// ResourceFunc extracts the resource reference from the request path.
type ResourceFunc func(c *gin.Context) Resource

// Require runs the engine for the route's resource, deriving the action
// from the HTTP method. All denials share one 403 body; index outages
// surface as 503.
func Require(e *Engine, resource ResourceFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.PrincipalFrom(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		decision, err := e.Check(c.Request.Context(), p, ActionForMethod(c.Request.Method), resource(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "dependency unavailable"})
			return
		}
		if !decision.Allowed() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// RequireRole allows access only to the listed roles. Used for surfaces
// the engine does not model (user administration is admin-only even for
// reads).
func RequireRole(allowed ...auth.Role) gin.HandlerFunc {
	allowedSet := make(map[auth.Role]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		p, ok := auth.PrincipalFrom(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if _, ok := allowedSet[p.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
