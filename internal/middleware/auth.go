package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SscSPs/social_dashboard/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware creates a Gin middleware handler that requires a valid access token,
// taken from the Authorization header or, failing that, the access token cookie.
func AuthMiddleware(jwtSecret string, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		// CookieAuth may already have authenticated the request.
		if authMethod, exists := c.Get(string(authMethodKey)); exists {
			logger.Debug("Auth already done", "authMethod", authMethod)
			c.Next()
			return
		}

		tokenString, method, msg := extractToken(c, cookieName)
		if tokenString == "" {
			logger.Warn("Access token missing", "reason", msg)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
			return
		}

		claims, err := utils.ParseAndValidateJWT(tokenString, jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": tokenErrorMessage(err)})
			return
		}

		setAuthenticatedUser(c, claims.Subject, claims.Role, method)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the caller when a valid token is present and
// lets the request through anonymously otherwise.
func OptionalAuthMiddleware(jwtSecret string, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(string(authMethodKey)); exists {
			c.Next()
			return
		}
		tokenString, method, _ := extractToken(c, cookieName)
		if tokenString != "" {
			if claims, err := utils.ParseAndValidateJWT(tokenString, jwtSecret); err == nil {
				setAuthenticatedUser(c, claims.Subject, claims.Role, method)
			} else {
				GetLoggerFromCtx(c.Request.Context()).Debug("Ignoring invalid optional token", "error", err)
			}
		}
		c.Next()
	}
}

// extractToken returns the bearer token, or the cookie value when no header is sent.
// On failure it returns an empty token and the message for the client.
func extractToken(c *gin.Context, cookieName string) (string, string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", "", "Authorization header format must be Bearer {token}"
		}
		return strings.TrimSpace(parts[1]), AuthMethodBearer, ""
	}
	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			return cookie, AuthMethodCookie, ""
		}
	}
	return "", "", "Authentication required"
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return "Token not valid yet"
	default:
		return "Invalid token"
	}
}
