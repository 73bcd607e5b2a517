package middleware

import (
	"log/slog"
	"net/http"

	"animehub/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

const TooManyAttemptsMessage = "Too many attempts, please try again later."

// Throttle limits form submissions per client IP and route. Denied requests
// are sent back to the form with a flash. A failing limiter lets requests through.
func Throttle(limiter ratelimit.Limiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.FullPath() + "|" + c.ClientIP()

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warn("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if allowed {
			c.Next()
			return
		}

		logger.Info("throttled", "path", c.Request.URL.Path, "client_ip", c.ClientIP())
		AddFlash(c, TooManyAttemptsMessage)
		if err := SaveSession(c); err != nil {
			logger.Error("save session", "error", err)
		}
		c.Redirect(http.StatusSeeOther, c.Request.URL.Path)
		c.Abort()
	}
}
