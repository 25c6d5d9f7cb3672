package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/livecanvas/dashboard-backend/internal/auth"
	"github.com/livecanvas/dashboard-backend/internal/auth/domain"
	"github.com/livecanvas/dashboard-backend/internal/logging"
)

// TokenCookie is the httpOnly cookie the login endpoint sets.
const TokenCookie = "token"

type Verifier interface {
	VerifySession(ctx context.Context, token string) (*domain.Identity, error)
}

// RequireSession rejects requests without a valid session token.
func RequireSession(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing session token"})
			return
		}

		id, err := v.VerifySession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid session"})
				return
			}
			logging.FromContext(c.Request.Context()).Error().Err(err).Msg("verify session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
			return
		}

		auth.SetIdentity(c, id)
		c.Next()
	}
}

// OptionalSession attaches the identity when a valid token is present and
// lets anonymous requests through. Used when AUTH_REQUIRED=false.
func OptionalSession(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := ExtractToken(c); token != "" {
			if id, err := v.VerifySession(c.Request.Context(), token); err == nil {
				auth.SetIdentity(c, id)
			}
		}
		c.Next()
	}
}

// ExtractToken reads the Bearer header first, then the token cookie.
func ExtractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}
