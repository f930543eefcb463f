package handler

import (
	"context"

	"github.com/atlas/backend/internal/application/crm"
	domaincrm "github.com/atlas/backend/internal/domain/crm"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OpportunityService manages the sales pipeline
type OpportunityService interface {
	List(ctx context.Context, tenantID uuid.UUID, status string, filter shared.Filter) ([]crm.OpportunityResponse, error)
	Create(ctx context.Context, tenantID, actorID uuid.UUID, in crm.CreateOpportunityInput) (*crm.OpportunityResponse, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, in crm.UpdateOpportunityInput) (*crm.OpportunityResponse, error)
	Pipeline(ctx context.Context, tenantID uuid.UUID) (*domaincrm.Pipeline, error)
}

// OpportunityHandler handles opportunity HTTP requests
type OpportunityHandler struct {
	BaseHandler
	opportunityService OpportunityService
}

// NewOpportunityHandler creates a new opportunity handler
func NewOpportunityHandler(opportunityService OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{opportunityService: opportunityService}
}

// List godoc
// @Summary      List opportunities
// @Description  List the tenant's opportunities, optionally by status
// @Tags         opportunities
// @Produce      json
// @Security     SessionCookie
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(200)
// @Param        search query string false "Search term"
// @Param        status query string false "Pipeline status"
// @Success      200 {object} dto.Response{data=[]crm.OpportunityResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /opportunities [get]
func (h *OpportunityHandler) List(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	list, err := h.opportunityService.List(c.Request.Context(), id.TenantID, c.Query("status"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, list, len(list), filter)
}

// Create godoc
// @Summary      Create opportunity
// @Description  Open a sales opportunity
// @Tags         opportunities
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        request body crm.CreateOpportunityInput true "Opportunity data"
// @Success      201 {object} dto.Response{data=crm.OpportunityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /opportunities [post]
func (h *OpportunityHandler) Create(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	var req crm.CreateOpportunityInput
	if !h.bindJSON(c, &req) {
		return
	}
	opp, err := h.opportunityService.Create(c.Request.Context(), id.TenantID, id.PersonID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, opp)
}

// Update godoc
// @Summary      Update opportunity
// @Description  Move an opportunity through the pipeline or edit its value
// @Tags         opportunities
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id path string true "Opportunity ID" format(uuid)
// @Param        request body crm.UpdateOpportunityInput true "Fields to change"
// @Success      200 {object} dto.Response{data=crm.OpportunityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /opportunities/{id} [patch]
func (h *OpportunityHandler) Update(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	oppID, ok := h.pathID(c)
	if !ok {
		return
	}
	var req crm.UpdateOpportunityInput
	if !h.bindJSON(c, &req) {
		return
	}
	opp, err := h.opportunityService.Update(c.Request.Context(), id.TenantID, oppID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, opp)
}

// Pipeline godoc
// @Summary      Opportunity pipeline
// @Description  Count and value of opportunities per status
// @Tags         opportunities
// @Produce      json
// @Security     SessionCookie
// @Success      200 {object} dto.Response{data=domaincrm.Pipeline}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /opportunities/pipeline [get]
func (h *OpportunityHandler) Pipeline(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	pipeline, err := h.opportunityService.Pipeline(c.Request.Context(), id.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pipeline)
}
