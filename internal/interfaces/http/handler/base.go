package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/infrastructure/auth"
	"github.com/atlas/backend/internal/infrastructure/logger"
	"github.com/atlas/backend/internal/interfaces/http/dto"
	"github.com/atlas/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// caller returns the session identity. Routes behind the session middleware
// always have one; a missing identity answers 401 and returns nil.
func (h *BaseHandler) caller(c *gin.Context) *auth.Identity {
	id := middleware.GetIdentity(c)
	if id == nil {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeSessionRequired, "Session required")
	}
	return id
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessList sends a page of results with its pagination meta
func (h *BaseHandler) SuccessList(c *gin.Context, data any, count int, filter shared.Filter) {
	c.JSON(http.StatusOK, dto.NewListResponse(data, count, max(filter.Page, 1), filter.Limit()))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the given status and code
func (h *BaseHandler) Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponse(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		middleware.GetRequestID(c),
		details,
	))
}

// HandleError converts service errors to HTTP responses. Domain errors keep
// their message; anything else is logged and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		status := dto.GetHTTPStatus(code)
		if status >= http.StatusInternalServerError {
			logger.L(c.Request.Context()).Warn("Request failed", zap.String("code", code), zap.Error(err))
		}
		h.Error(c, status, code, domainErr.Message)
		return
	}

	_ = c.Error(err)
	logger.L(c.Request.Context()).Error("Unhandled error", zap.Error(err))
	h.InternalError(c, "An unexpected error occurred")
}

// bindJSON decodes the body into req and answers 400 on failure
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if details := middleware.ValidationDetails(err); details != nil {
			h.ValidationError(c, details)
			return false
		}
		h.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// bindQuery decodes query parameters into req and answers 400 on failure
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		if details := middleware.ValidationDetails(err); details != nil {
			h.ValidationError(c, details)
			return false
		}
		h.BadRequest(c, "Invalid query parameters")
		return false
	}
	return true
}

// pathID parses the :id path parameter
func (h *BaseHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// listFilter reads page, page_size and search from the query string
func (h *BaseHandler) listFilter(c *gin.Context) (shared.Filter, bool) {
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return shared.Filter{}, false
	}
	f := shared.DefaultFilter()
	if req.Page > 0 {
		f.Page = req.Page
	}
	if req.PageSize > 0 {
		f.PageSize = req.PageSize
	}
	f.Search = req.Search
	return f, true
}

// PeriodQuery is an optional report window. Both bounds accept RFC 3339
// timestamps or plain dates.
type PeriodQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// period parses the from/to query parameters; absent bounds stay nil.
// Plain dates are midnight in loc.
func (h *BaseHandler) period(c *gin.Context, loc *time.Location) (from, to *time.Time, ok bool) {
	var q PeriodQuery
	if !h.bindQuery(c, &q) {
		return nil, nil, false
	}
	parse := func(name, raw string) (*time.Time, bool) {
		if raw == "" {
			return nil, true
		}
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return &t, true
		}
		if t, err := time.ParseInLocation(time.DateOnly, raw, loc); err == nil {
			return &t, true
		}
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, name+" must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
		return nil, false
	}
	if from, ok = parse("from", q.From); !ok {
		return nil, nil, false
	}
	if to, ok = parse("to", q.To); !ok {
		return nil, nil, false
	}
	return from, to, true
}
