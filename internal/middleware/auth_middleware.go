package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/Sculptor-AI/tralalero/internal/auth"
	"github.com/Sculptor-AI/tralalero/internal/model"

	"github.com/gin-gonic/gin"
)

// Keys set on the gin context for downstream handlers.
const (
	UserIDKey = "userID"
	TokenKey  = "token"
)

// SessionStore is the slice of the session repository the middleware needs.
// *repository.SessionRepository satisfies it.
type SessionStore interface {
	FindByToken(ctx context.Context, token string) (*model.Session, error)
}

// AuthMiddleware authenticates requests in two stages: first the offline
// signature and expiry check, then a live session-row lookup. The lookup
// never runs for a token that fails the offline check, so forged tokens
// cannot probe the session table.
func AuthMiddleware(secret []byte, sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}
		token := parts[1]

		verdict := auth.VerifyToken(token, secret)
		if !verdict.Accepted {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		session, err := sessions.FindByToken(c.Request.Context(), token)
		if err != nil {
			log.Printf("session lookup failed: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify session"})
			return
		}
		if session == nil || session.UserID != verdict.UserID {
			// Revoked: the token verifies but its session row is gone.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(UserIDKey, verdict.UserID)
		c.Set(TokenKey, token)
		c.Next()
	}
}
