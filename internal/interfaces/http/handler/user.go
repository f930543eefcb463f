package handler

import (
	"context"

	"github.com/atlas/backend/internal/application/identity"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserService manages console users
type UserService interface {
	List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.PersonResponse, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*identity.PersonResponse, error)
	Create(ctx context.Context, tenantID uuid.UUID, in identity.CreatePersonInput) (*identity.PersonResponse, error)
	Update(ctx context.Context, tenantID, actorID, id uuid.UUID, in identity.UpdatePersonInput) (*identity.PersonResponse, error)
	SetPassword(ctx context.Context, tenantID, id uuid.UUID, password string) error
	Delete(ctx context.Context, tenantID, actorID, id uuid.UUID) error
}

// UserHandler handles user management HTTP requests
type UserHandler struct {
	BaseHandler
	userService UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List godoc
// @Summary      List users
// @Description  List the tenant's console users
// @Tags         users
// @Produce      json
// @Security     SessionCookie
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(200)
// @Param        search query string false "Search term"
// @Success      200 {object} dto.Response{data=[]identity.PersonResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	users, err := h.userService.List(c.Request.Context(), id.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, users, len(users), filter)
}

// Get godoc
// @Summary      Get user
// @Description  Get a console user by ID
// @Tags         users
// @Produce      json
// @Security     SessionCookie
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} dto.Response{data=identity.PersonResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	userID, ok := h.pathID(c)
	if !ok {
		return
	}
	user, err := h.userService.Get(c.Request.Context(), id.TenantID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Create godoc
// @Summary      Create user
// @Description  Create a console user with an initial password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        request body CreateUserRequest true "User data"
// @Success      201 {object} dto.Response{data=identity.PersonResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	var req CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, err := h.userService.Create(c.Request.Context(), id.TenantID, identity.CreatePersonInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Update godoc
// @Summary      Update user
// @Description  Update a console user's profile, role or active flag
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id path string true "User ID" format(uuid)
// @Param        request body UpdateUserRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=identity.PersonResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	userID, ok := h.pathID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, err := h.userService.Update(c.Request.Context(), id.TenantID, id.PersonID, userID, identity.UpdatePersonInput(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// SetPassword godoc
// @Summary      Set user password
// @Description  Replace a console user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id path string true "User ID" format(uuid)
// @Param        request body SetPasswordRequest true "New password"
// @Success      200 {object} dto.Response{data=map[string]any}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/{id}/password [post]
func (h *UserHandler) SetPassword(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	userID, ok := h.pathID(c)
	if !ok {
		return
	}
	var req SetPasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.userService.SetPassword(c.Request.Context(), id.TenantID, userID, req.Password); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": userID, "password_changed": true})
}

// Delete godoc
// @Summary      Delete user
// @Description  Delete a console user
// @Tags         users
// @Produce      json
// @Security     SessionCookie
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} dto.Response{data=map[string]any}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	userID, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), id.TenantID, id.PersonID, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": userID, "deleted": true})
}
