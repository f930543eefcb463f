package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/atlas/backend/internal/infrastructure/auth"
	"github.com/atlas/backend/internal/infrastructure/logger"
	"github.com/atlas/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdentityKey is the gin context key the resolved caller is stored under
const IdentityKey = "identity"

// Authenticator resolves a session token to its caller
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Identity, error)
}

// Session requires a valid session cookie. The caller is stored on the gin
// context and its tenant and person IDs are attached to the request logger.
func Session(authn Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			abortSession(c, "Session required")
			return
		}

		id, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			msg := "Invalid session"
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				msg = "Session has expired"
			case errors.Is(err, auth.ErrRevokedToken):
				msg = "Session has been closed"
			}
			logger.L(c.Request.Context()).Info("Session rejected", zap.Error(err))
			abortSession(c, msg)
			return
		}

		c.Set(IdentityKey, id)
		ctx := logger.WithIdentity(c.Request.Context(), id.TenantID.String(), id.PersonID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetIdentity returns the caller set by Session, or nil on public routes
func GetIdentity(c *gin.Context) *auth.Identity {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*auth.Identity)
	return id
}

func abortSession(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeSessionRequired, msg, GetRequestID(c)))
}
