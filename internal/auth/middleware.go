package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"

// Authenticate verifies a bearer access token and injects identity into
// the request context. An absent Authorization header is not an error:
// the request proceeds anonymously and protected routes reject it via
// RequireAuthenticated. A present but malformed header is a hard failure.
//
// All decode failures share one response body; callers must not learn
// whether a token was expired, tampered with or mis-issued.
func Authenticate(codec *Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(authorizationHeader)
		if strings.TrimSpace(raw) == "" {
			c.Next()
			return
		}

		parts := strings.Fields(raw)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		claims, err := codec.Decode(parts[1], time.Now().UTC())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		if err := RequireType(claims, TokenTypeAccess); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "wrong token type"})
			return
		}

		p := ResolvePrincipal(claims)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), p, claims))

		// Also store on gin context for handler convenience.
		c.Set("principal", p)

		c.Next()
	}
}

// RequireAuthenticated rejects anonymous requests. Chain it after
// Authenticate on protected route groups.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := PrincipalFrom(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}
