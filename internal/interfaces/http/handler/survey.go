package handler

import (
	"context"
	"net/http"

	"github.com/atlas/backend/internal/application/survey"
	"github.com/atlas/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SurveyService issues delivery survey links and records answers
type SurveyService interface {
	Issue(ctx context.Context, tenantID, orderID uuid.UUID, in survey.IssueInput) (*survey.IssueResult, error)
	Submit(ctx context.Context, in survey.SubmitInput) (*survey.SubmitResult, error)
	Lookup(ctx context.Context, token string) (*survey.LinkView, error)
}

// SurveyHandler serves the delivery survey endpoints. Submit and Lookup are
// public; the token is the only credential.
type SurveyHandler struct {
	BaseHandler
	surveyService SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveyService SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

// Issue godoc
// @Summary      Issue delivery survey
// @Description  Issue the survey link for an order. An empty body is a plain issue without resend
// @Tags         survey
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body survey.IssueInput false "Resend options"
// @Success      200 {object} dto.Response{data=survey.IssueResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id}/survey [post]
func (h *SurveyHandler) Issue(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	orderID, ok := h.pathID(c)
	if !ok {
		return
	}
	var req survey.IssueInput
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	result, err := h.surveyService.Issue(c.Request.Context(), id.TenantID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Submit godoc
// @Summary      Submit delivery survey
// @Description  Record the customer's answers; the token is the only credential
// @Tags         survey
// @Accept       json
// @Produce      json
// @Param        request body survey.SubmitInput true "Survey answers"
// @Success      201 {object} dto.Response{data=survey.SubmitResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /delivery-survey/submit [post]
func (h *SurveyHandler) Submit(c *gin.Context) {
	var req survey.SubmitInput
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.surveyService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Lookup godoc
// @Summary      Look up delivery survey
// @Description  Return the order summary behind a survey token
// @Tags         survey
// @Produce      json
// @Param        token path string true "Survey token"
// @Success      200 {object} dto.Response{data=survey.LinkView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /delivery-survey/{token} [get]
func (h *SurveyHandler) Lookup(c *gin.Context) {
	token := c.Param("token")
	if token == "" || len(token) > 64 {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid survey token")
		return
	}
	view, err := h.surveyService.Lookup(c.Request.Context(), token)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
