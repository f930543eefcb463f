package handler

import (
	"context"
	"time"

	"github.com/atlas/backend/internal/domain/metrics"
	"github.com/atlas/backend/internal/domain/sales"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OverviewService computes the dashboard headline figures
type OverviewService interface {
	Overview(ctx context.Context, tenantID uuid.UUID) (*metrics.Overview, error)
	Location() *time.Location
}

// ReportService builds the sales and returns reports
type ReportService interface {
	Sales(ctx context.Context, tenantID uuid.UUID, from, to *time.Time) (*sales.SalesReport, error)
	Returns(ctx context.Context, tenantID uuid.UUID, from, to *time.Time) (*sales.ReturnsReport, error)
}

// DashboardHandler serves the metrics overview and the reports
type DashboardHandler struct {
	BaseHandler
	overviewService OverviewService
	reportService   ReportService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(overviewService OverviewService, reportService ReportService) *DashboardHandler {
	return &DashboardHandler{overviewService: overviewService, reportService: reportService}
}

// Overview godoc
// @Summary      Metrics overview
// @Description  Headline sales, customer and pipeline figures for the tenant
// @Tags         dashboard
// @Produce      json
// @Security     SessionCookie
// @Success      200 {object} dto.Response{data=metrics.Overview}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /metrics/overview [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	overview, err := h.overviewService.Overview(c.Request.Context(), id.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overview)
}

// SalesReport godoc
// @Summary      Sales report
// @Description  Sales totals by day, seller and product over a date window
// @Tags         reports
// @Produce      json
// @Security     SessionCookie
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=sales.SalesReport}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /reports/sales [get]
func (h *DashboardHandler) SalesReport(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	from, to, ok := h.period(c, h.overviewService.Location())
	if !ok {
		return
	}
	report, err := h.reportService.Sales(c.Request.Context(), id.TenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// ReturnsReport godoc
// @Summary      Returns report
// @Description  Returned units and amounts over a date window
// @Tags         reports
// @Produce      json
// @Security     SessionCookie
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=sales.ReturnsReport}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /reports/returns [get]
func (h *DashboardHandler) ReturnsReport(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	from, to, ok := h.period(c, h.overviewService.Location())
	if !ok {
		return
	}
	report, err := h.reportService.Returns(c.Request.Context(), id.TenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}
