package handler

import (
	"context"
	"time"

	"github.com/atlas/backend/internal/application/sales"
	"github.com/atlas/backend/internal/domain/identity"
	domainsales "github.com/atlas/backend/internal/domain/sales"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PromoterService manages self-reported promoter sales
type PromoterService interface {
	ListMine(ctx context.Context, tenantID, promoterID uuid.UUID, filter shared.Filter) ([]sales.PromoterSaleResponse, error)
	Report(ctx context.Context, tenantID, promoterID uuid.UUID, in sales.CreatePromoterSaleInput) (*sales.PromoterSaleResponse, error)
	Withdraw(ctx context.Context, tenantID, promoterID, id uuid.UUID) error
	Review(ctx context.Context, tenantID, reviewer uuid.UUID, role identity.Role, id uuid.UUID, in sales.ReviewPromoterSaleInput) (*sales.PromoterSaleResponse, error)
	Summary(ctx context.Context, tenantID uuid.UUID, from, to *time.Time) ([]domainsales.PromoterSummary, error)
}

// PromoterHandler handles promoter sale HTTP requests
type PromoterHandler struct {
	BaseHandler
	promoterService PromoterService
	loc             *time.Location
}

// NewPromoterHandler creates a new promoter handler. loc interprets plain
// dates in the summary window.
func NewPromoterHandler(promoterService PromoterService, loc *time.Location) *PromoterHandler {
	return &PromoterHandler{promoterService: promoterService, loc: loc}
}

// ListMine godoc
// @Summary      List my promoter sales
// @Description  List the sales the caller reported
// @Tags         promoters
// @Produce      json
// @Security     SessionCookie
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(200)
// @Param        search query string false "Search term"
// @Success      200 {object} dto.Response{data=[]sales.PromoterSaleResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /my/promoter-sales [get]
func (h *PromoterHandler) ListMine(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	list, err := h.promoterService.ListMine(c.Request.Context(), id.TenantID, id.PersonID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, list, len(list), filter)
}

// Report godoc
// @Summary      Report promoter sale
// @Description  Report a sale made by the caller
// @Tags         promoters
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        request body sales.CreatePromoterSaleInput true "Sale data"
// @Success      201 {object} dto.Response{data=sales.PromoterSaleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /my/promoter-sales [post]
func (h *PromoterHandler) Report(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	var req sales.CreatePromoterSaleInput
	if !h.bindJSON(c, &req) {
		return
	}
	sale, err := h.promoterService.Report(c.Request.Context(), id.TenantID, id.PersonID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// Withdraw godoc
// @Summary      Withdraw promoter sale
// @Description  Delete one of the caller's sales while it is still pending
// @Tags         promoters
// @Produce      json
// @Security     SessionCookie
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} dto.Response{data=map[string]any}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /my/promoter-sales/{id} [delete]
func (h *PromoterHandler) Withdraw(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	saleID, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.promoterService.Withdraw(c.Request.Context(), id.TenantID, id.PersonID, saleID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": saleID, "deleted": true})
}

// Review godoc
// @Summary      Review promoter sale
// @Description  Approve or reject a reported sale
// @Tags         promoters
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body sales.ReviewPromoterSaleInput true "Review decision"
// @Success      200 {object} dto.Response{data=sales.PromoterSaleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /promoters/sales/{id} [patch]
func (h *PromoterHandler) Review(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	saleID, ok := h.pathID(c)
	if !ok {
		return
	}
	var req sales.ReviewPromoterSaleInput
	if !h.bindJSON(c, &req) {
		return
	}
	sale, err := h.promoterService.Review(c.Request.Context(), id.TenantID, id.PersonID, id.Role, saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Summary godoc
// @Summary      Promoter summary
// @Description  Per-promoter totals over a date window
// @Tags         promoters
// @Produce      json
// @Security     SessionCookie
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]domainsales.PromoterSummary}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /promoters/summary [get]
func (h *PromoterHandler) Summary(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	from, to, ok := h.period(c, h.loc)
	if !ok {
		return
	}
	summary, err := h.promoterService.Summary(c.Request.Context(), id.TenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
