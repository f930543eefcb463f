package handler

import (
	"context"
	"errors"
	"net/http"

	assistantapp "github.com/atlas/backend/internal/application/assistant"
	"github.com/atlas/backend/internal/domain/assistant"
	"github.com/atlas/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ChatService answers questions about the tenant's data
type ChatService interface {
	Chat(ctx context.Context, req assistant.Request, in assistantapp.ChatInput) (*assistantapp.ChatResult, error)
}

// AssistantHandler serves the AI chat endpoint
type AssistantHandler struct {
	BaseHandler
	chatService ChatService
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(chatService ChatService) *AssistantHandler {
	return &AssistantHandler{chatService: chatService}
}

// Chat godoc
// @Summary      Ask the assistant
// @Description  Answer a question about the tenant's data using the modules the caller may open
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        request body assistantapp.ChatInput true "Question"
// @Success      200 {object} dto.Response{data=assistantapp.ChatResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /ai/chat [post]
func (h *AssistantHandler) Chat(c *gin.Context) {
	id := h.caller(c)
	if id == nil {
		return
	}
	var req assistantapp.ChatInput
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.chatService.Chat(c.Request.Context(), assistant.Request{
		TenantID: id.TenantID.String(),
		PersonID: id.PersonID.String(),
		Role:     id.Role.String(),
		Name:     id.Name,
	}, req)
	if errors.Is(err, assistantapp.ErrAssistantFailed) {
		h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "The assistant could not answer, please try again")
		return
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
