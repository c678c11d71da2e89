package middleware

import (
	"github.com/SscSPs/social_dashboard/internal/utils"
	"github.com/gin-gonic/gin"
)

// CookieAuth authenticates browser requests from the access token cookie.
// Requests carrying an Authorization header are left to AuthMiddleware, and an
// invalid cookie only means the request continues unauthenticated.
func CookieAuth(jwtSecret string, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Next()
			return
		}

		tokenString, err := c.Cookie(cookieName)
		if err != nil || tokenString == "" {
			c.Next()
			return
		}

		claims, err := utils.ParseAndValidateJWT(tokenString, jwtSecret)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Debug("Access cookie rejected", "error", err)
			c.Next()
			return
		}

		setAuthenticatedUser(c, claims.Subject, claims.Role, AuthMethodCookie)
		c.Next()
	}
}
