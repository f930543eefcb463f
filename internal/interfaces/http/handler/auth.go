package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/atlas/backend/internal/application/identity"
	"github.com/atlas/backend/internal/infrastructure/auth"
	"github.com/atlas/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
)

// AuthService is what the auth endpoints need from the identity layer
type AuthService interface {
	Login(ctx context.Context, in identity.LoginInput) (*identity.LoginResult, error)
	Logout(ctx context.Context, id *auth.Identity) error
	Me(id *auth.Identity) identity.MeResponse
}

// AuthHandler handles login, logout and session introspection
type AuthHandler struct {
	BaseHandler
	authService AuthService
	cookie      config.SessionConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, cookie config.SessionConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Login godoc
// @Summary      Console login
// @Description  Authenticate with username or email and password; sets the session cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} dto.Response{data=LoginResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setCookie(c, result.Token, int(h.cookie.Lifetime.Seconds()))
	h.Success(c, LoginResponse{
		User:      result.User,
		Modules:   result.Modules,
		ExpiresAt: result.ExpiresAt,
	})
}

// Logout godoc
// @Summary      Console logout
// @Description  Revoke the session and clear the cookie. The cookie is cleared even when the revocation cannot be stored
// @Tags         auth
// @Produce      json
// @Security     SessionCookie
// @Success      200 {object} dto.Response{data=map[string]bool}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	err := h.authService.Logout(c.Request.Context(), id)
	h.setCookie(c, "", -1)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"logged_out": true})
}

// Me godoc
// @Summary      Current session
// @Description  Return the caller, their role and the modules they may open
// @Tags         auth
// @Produce      json
// @Security     SessionCookie
// @Success      200 {object} dto.Response{data=identity.MeResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	h.Success(c, h.authService.Me(id))
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(sameSite(h.cookie.SameSite))
	c.SetCookie(h.cookie.CookieName, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
