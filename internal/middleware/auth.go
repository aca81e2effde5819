package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"printshop-backend/internal/models"
)

// SessionHeader is the request header that carries the admin session token.
const SessionHeader = "sessionid"

// SessionKey is the gin context key the verified token is stored under.
const SessionKey = "session_token"

// SessionVerifier reports whether a token belongs to a live admin session.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// RequireSession rejects requests without a valid admin session with 401.
// It is composed in front of every privileged route.
func RequireSession(sessions SessionVerifier, logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(SessionHeader))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Error:   "Unauthorized",
				Message: "Missing session",
			})
			return
		}

		ok, err := sessions.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Error("failed to verify session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Error:   "Something went wrong!",
			})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Error:   "Unauthorized",
				Message: "Invalid or expired session",
			})
			return
		}

		c.Set(SessionKey, token)
		c.Next()
	}
}
