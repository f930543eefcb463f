package dto

// Response is the envelope every endpoint returns
type Response struct {
	OK        bool       `json:"ok"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorInfo `json:"error,omitempty"`
	Meta      *Meta      `json:"meta,omitempty"`
	RequestID string     `json:"request_id,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Details []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail describes one rejected field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta represents pagination metadata
type Meta struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Count    int `json:"count"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{OK: true, Data: data}
}

// NewListResponse creates a success response with pagination meta
func NewListResponse(data any, count, page, pageSize int) Response {
	return Response{
		OK:   true,
		Data: data,
		Meta: &Meta{Page: page, PageSize: pageSize, Count: count},
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message, requestID string) Response {
	return Response{
		OK:        false,
		Error:     &ErrorInfo{Code: code, Message: message},
		RequestID: requestID,
	}
}

// NewValidationErrorResponse creates a 400 response listing each rejected field
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	return Response{
		OK:        false,
		Error:     &ErrorInfo{Code: ErrCodeValidation, Message: message, Details: details},
		RequestID: requestID,
	}
}

// ListRequest represents common list/pagination query parameters
type ListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	Search   string `form:"search" binding:"max=100"`
}

// IDRequest represents a request with an ID path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
