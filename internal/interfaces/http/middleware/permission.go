package middleware

import (
	"net/http"

	"github.com/atlas/backend/internal/domain/identity"
	"github.com/atlas/backend/internal/infrastructure/logger"
	"github.com/atlas/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireModule lets the request through only when the module is switched
// on and the caller's role may see it. It must run after Session.
func RequireModule(access *identity.ModuleAccess, module identity.Module) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := GetIdentity(c)
		if id == nil {
			abortSession(c, "Session required")
			return
		}

		if !access.Enabled(module) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeModuleDisabled, "Module "+string(module)+" is disabled", GetRequestID(c)))
			return
		}
		if !identity.CanAccessModule(id.Role, module) {
			logger.L(c.Request.Context()).Warn("Module access denied",
				zap.String("module", string(module)),
				zap.String("role", id.Role.String()),
			)
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Your role cannot access "+string(module), GetRequestID(c)))
			return
		}
		c.Next()
	}
}
