package httpapi

import (
	"net/http"
	"time"

	"grocery-platform/pkg/logger"
	"grocery-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	loginAttemptLimit  = 10
	loginAttemptWindow = time.Minute
)

// LoginThrottle caps credential-exchange attempts (login and refresh)
// per client address over a fixed window. A nil client disables
// throttling; a redis outage fails open so an unavailable throttle
// never locks everyone out.
func LoginThrottle(rdb *redis.Client) gin.HandlerFunc {
	if rdb == nil {
		return nil
	}
	return func(c *gin.Context) {
		key := "login_attempts:" + c.ClientIP()
		ok, err := utils.FixedWindowAllow(c.Request.Context(), rdb, key, loginAttemptLimit, loginAttemptWindow)
		if err != nil {
			logger.FromGin(c).Warn("login throttle unavailable", "error", err)
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
			return
		}
		c.Next()
	}
}
