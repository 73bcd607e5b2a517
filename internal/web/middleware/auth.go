package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const LoginRequiredMessage = "Please log in to access this page."

// RequireLogin sends anonymous visitors to the login page instead of running
// the protected handler. Authenticated requests get "username" set on the context.
func RequireLogin(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := CurrentUser(c)
		if !ok {
			AddFlash(c, LoginRequiredMessage)
			if err := SaveSession(c); err != nil {
				logger.Error("save session", "error", err)
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("username", username)
		c.Next()
	}
}
