package handler

import (
	"context"

	"github.com/atlas/backend/internal/application/crm"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerService manages CRM customers
type CustomerService interface {
	List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]crm.CustomerResponse, error)
	Create(ctx context.Context, tenantID, actorID uuid.UUID, in crm.CreateCustomerInput) (*crm.CustomerResponse, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, in crm.UpdateCustomerInput) (*crm.CustomerResponse, error)
}

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	BaseHandler
	customerService CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List godoc
// @Summary      List customers
// @Description  List the tenant's customers
// @Tags         customers
// @Produce      json
// @Security     SessionCookie
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(200)
// @Param        search query string false "Search term"
// @Success      200 {object} dto.Response{data=[]crm.CustomerResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	customers, err := h.customerService.List(c.Request.Context(), id.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, customers, len(customers), filter)
}

// Create godoc
// @Summary      Create customer
// @Description  Create a customer owned by the caller unless owner_id says otherwise
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        request body crm.CreateCustomerInput true "Customer data"
// @Success      201 {object} dto.Response{data=crm.CustomerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	var req crm.CreateCustomerInput
	if !h.bindJSON(c, &req) {
		return
	}
	customer, err := h.customerService.Create(c.Request.Context(), id.TenantID, id.PersonID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// Update godoc
// @Summary      Update customer
// @Description  Update a customer's contact data or owner
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id path string true "Customer ID" format(uuid)
// @Param        request body crm.UpdateCustomerInput true "Fields to change"
// @Success      200 {object} dto.Response{data=crm.CustomerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /customers/{id} [patch]
func (h *CustomerHandler) Update(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	customerID, ok := h.pathID(c)
	if !ok {
		return
	}
	var req crm.UpdateCustomerInput
	if !h.bindJSON(c, &req) {
		return
	}
	customer, err := h.customerService.Update(c.Request.Context(), id.TenantID, customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}
