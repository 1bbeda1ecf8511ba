package httpapi

import (
	"fmt"
	"strings"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/example/vocabquiz/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	authCookie = "auth_token"
	userIDKey  = "user_id"
)

// RequireUser rejects requests without a valid identity token and stores the user id in the context.
// The token is read from the Authorization header and falls back to the auth cookie.
func RequireUser(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := tokenFromRequest(c)
		if err != nil {
			respondError(c, "authenticate", err)
			return
		}

		userID, err := authService.ValidateToken(token)
		if err != nil {
			respondError(c, "authenticate", err)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) (string, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", fmt.Errorf("%w: invalid authorization header format", apperr.ErrUnauthenticated)
		}
		return strings.TrimSpace(parts[1]), nil
	}
	if cookie, err := c.Cookie(authCookie); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", fmt.Errorf("%w: authorization required", apperr.ErrUnauthenticated)
}

// currentUser returns the id stored by RequireUser
func currentUser(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}
