package handler

import (
	"context"

	"github.com/atlas/backend/internal/application/sales"
	"github.com/atlas/backend/internal/domain/identity"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderService manages sales orders
type OrderService interface {
	Create(ctx context.Context, tenantID, sellerID uuid.UUID, in sales.CreateOrderInput) (*sales.OrderResponse, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*sales.OrderResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.OrderResponse, error)
	Delete(ctx context.Context, tenantID uuid.UUID, role identity.Role, id uuid.UUID) (*sales.DeleteOrderResult, error)
}

// ReturnService records product returns
type ReturnService interface {
	Create(ctx context.Context, tenantID uuid.UUID, in sales.CreateReturnInput) (*sales.ReturnResponse, error)
}

// OrderHandler handles sales order and return HTTP requests
type OrderHandler struct {
	BaseHandler
	orderService  OrderService
	returnService ReturnService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService OrderService, returnService ReturnService) *OrderHandler {
	return &OrderHandler{orderService: orderService, returnService: returnService}
}

// List godoc
// @Summary      List orders
// @Description  List the tenant's sales orders
// @Tags         orders
// @Produce      json
// @Security     SessionCookie
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(200)
// @Param        search query string false "Search term"
// @Success      200 {object} dto.Response{data=[]sales.OrderResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	orders, err := h.orderService.List(c.Request.Context(), id.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, orders, len(orders), filter)
}

// Create godoc
// @Summary      Create order
// @Description  Create a sales order; the caller is recorded as the seller
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        request body sales.CreateOrderInput true "Order data"
// @Success      201 {object} dto.Response{data=sales.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	var req sales.CreateOrderInput
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.Create(c.Request.Context(), id.TenantID, id.PersonID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Get godoc
// @Summary      Get order
// @Description  Get a sales order with its lines
// @Tags         orders
// @Produce      json
// @Security     SessionCookie
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=sales.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	orderID, ok := h.pathID(c)
	if !ok {
		return
	}
	order, err := h.orderService.Get(c.Request.Context(), id.TenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete godoc
// @Summary      Delete order
// @Description  Delete a sales order and its lines. Only managerial roles may delete
// @Tags         orders
// @Produce      json
// @Security     SessionCookie
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=sales.DeleteOrderResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	orderID, ok := h.pathID(c)
	if !ok {
		return
	}
	result, err := h.orderService.Delete(c.Request.Context(), id.TenantID, id.Role, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CreateReturn godoc
// @Summary      Record product return
// @Description  Record a returned product against an order
// @Tags         returns
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        request body sales.CreateReturnInput true "Return data"
// @Success      201 {object} dto.Response{data=sales.ReturnResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /returns [post]
func (h *OrderHandler) CreateReturn(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	var req sales.CreateReturnInput
	if !h.bindJSON(c, &req) {
		return
	}
	ret, err := h.returnService.Create(c.Request.Context(), id.TenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ret)
}
