package handler

import (
	"context"

	"github.com/atlas/backend/internal/application/cash"
	"github.com/atlas/backend/internal/application/hr"
	"github.com/atlas/backend/internal/domain/inventory"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InventoryService summarizes stock levels
type InventoryService interface {
	Summary(ctx context.Context, tenantID uuid.UUID) (*inventory.Summary, error)
}

// ClosureService records cash register closures
type ClosureService interface {
	List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]cash.ClosureResponse, error)
	Close(ctx context.Context, tenantID, cashierID uuid.UUID, in cash.CloseInput) (*cash.ClosureResponse, error)
}

// AttendanceService records daily check-ins
type AttendanceService interface {
	CheckIn(ctx context.Context, tenantID, personID uuid.UUID, in hr.CheckInInput) (*hr.CheckInResult, error)
	Today(ctx context.Context, tenantID uuid.UUID) ([]hr.AttendanceResponse, error)
}

// OperationsHandler serves inventory, cash and attendance endpoints
type OperationsHandler struct {
	BaseHandler
	inventoryService  InventoryService
	closureService    ClosureService
	attendanceService AttendanceService
}

// NewOperationsHandler creates a new operations handler
func NewOperationsHandler(inventoryService InventoryService, closureService ClosureService, attendanceService AttendanceService) *OperationsHandler {
	return &OperationsHandler{
		inventoryService:  inventoryService,
		closureService:    closureService,
		attendanceService: attendanceService,
	}
}

// InventorySummary godoc
// @Summary      Inventory summary
// @Description  Stock levels and low-stock products
// @Tags         inventory
// @Produce      json
// @Security     SessionCookie
// @Success      200 {object} dto.Response{data=inventory.Summary}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/summary [get]
func (h *OperationsHandler) InventorySummary(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	summary, err := h.inventoryService.Summary(c.Request.Context(), id.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ListClosures godoc
// @Summary      List cash closures
// @Description  List the tenant's cash register closures
// @Tags         cash
// @Produce      json
// @Security     SessionCookie
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(200)
// @Param        search query string false "Search term"
// @Success      200 {object} dto.Response{data=[]cash.ClosureResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cash/closures [get]
func (h *OperationsHandler) ListClosures(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	list, err := h.closureService.List(c.Request.Context(), id.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, list, len(list), filter)
}

// CloseRegister godoc
// @Summary      Close cash register
// @Description  Record a cash register closure; the caller is the cashier
// @Tags         cash
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        request body cash.CloseInput true "Counted amounts"
// @Success      201 {object} dto.Response{data=cash.ClosureResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cash/closures [post]
func (h *OperationsHandler) CloseRegister(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	var req cash.CloseInput
	if !h.bindJSON(c, &req) {
		return
	}
	closure, err := h.closureService.Close(c.Request.Context(), id.TenantID, id.PersonID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, closure)
}

// CheckIn godoc
// @Summary      Attendance check-in
// @Description  Record the caller's check-in. A repeat check-in on the same business day answers 200 with the existing record
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        request body hr.CheckInInput false "Optional location and note"
// @Success      201 {object} dto.Response{data=hr.CheckInResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /attendance/check-in [post]
func (h *OperationsHandler) CheckIn(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	var req hr.CheckInInput
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	result, err := h.attendanceService.CheckIn(c.Request.Context(), id.TenantID, id.PersonID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result.Created {
		h.Created(c, result)
		return
	}
	h.Success(c, result)
}

// AttendanceToday godoc
// @Summary      Today's attendance
// @Description  List check-ins for the current business day
// @Tags         attendance
// @Produce      json
// @Security     SessionCookie
// @Success      200 {object} dto.Response{data=[]hr.AttendanceResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /attendance/today [get]
func (h *OperationsHandler) AttendanceToday(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	list, err := h.attendanceService.Today(c.Request.Context(), id.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}
