package handler

import (
	"context"

	"github.com/atlas/backend/internal/application/geocode"
	"github.com/atlas/backend/internal/domain/geo"
	"github.com/gin-gonic/gin"
)

// GeocodeResolver turns free text, coordinates or map links into a place
type GeocodeResolver interface {
	Resolve(ctx context.Context, input string) (*geo.Place, error)
}

// GeocodeHandler serves the geocoding endpoint
type GeocodeHandler struct {
	BaseHandler
	resolver GeocodeResolver
}

// NewGeocodeHandler creates a new geocode handler
func NewGeocodeHandler(resolver GeocodeResolver) *GeocodeHandler {
	return &GeocodeHandler{resolver: resolver}
}

// Resolve godoc
// @Summary      Resolve a location
// @Description  Resolve free text, coordinates or a map link into a place
// @Tags         geocode
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        request body geocode.ResolveInput true "Location input"
// @Success      200 {object} dto.Response{data=geo.Place}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /geocode [post]
func (h *GeocodeHandler) Resolve(c *gin.Context) {
	if h.caller(c) == nil {
		return
	}
	var req geocode.ResolveInput
	if !h.bindJSON(c, &req) {
		return
	}
	place, err := h.resolver.Resolve(c.Request.Context(), req.Input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, place)
}
