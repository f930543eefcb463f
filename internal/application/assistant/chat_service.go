// Package assistant answers business questions with a chat-completion model.
package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/atlas/backend/internal/domain/assistant"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/infrastructure/logger"
	"github.com/atlas/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// MaxQuestionLength bounds the question text
const MaxQuestionLength = 4000

// ErrAssistantFailed hides completion failures from clients
var ErrAssistantFailed = errors.New("assistant request failed")

// ChatInput is the body of a chat request
type ChatInput struct {
	Scope    string              `json:"scope"`
	Question string              `json:"question" binding:"required"`
	History  []assistant.Message `json:"history" binding:"max=50"`
}

// ChatResult is the model's answer
type ChatResult struct {
	Scope  assistant.Scope `json:"scope"`
	Answer string          `json:"answer"`
}

// configurable is implemented by completers that can report a missing API key
type configurable interface {
	Configured() bool
}

// SourceSet picks the context sources for a scope
type SourceSet interface {
	Sources(scope assistant.Scope) []assistant.Source
}

// ChatService gathers business context and forwards the question
type ChatService struct {
	completer assistant.Completer
	sources   SourceSet
}

// NewChatService creates a new ChatService
func NewChatService(completer assistant.Completer, sources SourceSet) *ChatService {
	return &ChatService{completer: completer, sources: sources}
}

// Chat validates the scope, fetches every context source concurrently,
// then asks the model. Sources that fail or return nothing are left out.
func (s *ChatService) Chat(ctx context.Context, req assistant.Request, in ChatInput) (*ChatResult, error) {
	scope, err := assistant.ParseScope(in.Scope)
	if err != nil {
		return nil, err
	}
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return nil, shared.NewValidationError("question is required")
	}
	if len([]rune(question)) > MaxQuestionLength {
		return nil, shared.NewValidationError("question is too long")
	}
	req.Scope = scope
	if c, ok := s.completer.(configurable); ok && !c.Configured() {
		return nil, shared.ErrNotConfigured
	}

	ctx, span := telemetry.StartSpan(ctx, "assistant", "chat", telemetry.AttrScope, string(scope), telemetry.AttrTenantID, req.TenantID)
	defer span.End()

	slices := s.gather(ctx, req)
	contextJSON := assistant.BuildContext(scope, slices)
	messages := assistant.BuildMessages(question, in.History, contextJSON)

	answer, err := s.completer.Complete(ctx, messages, assistant.Temperature)
	if err != nil {
		telemetry.RecordError(span, err)
		if errors.Is(err, shared.ErrNotConfigured) {
			return nil, err
		}
		logger.L(ctx).Error("Assistant completion failed", zap.String("scope", string(scope)), zap.Error(err))
		return nil, ErrAssistantFailed
	}
	return &ChatResult{Scope: scope, Answer: answer}, nil
}

// gather runs every source concurrently and waits for all of them. The
// slice order follows the source order regardless of completion order.
func (s *ChatService) gather(ctx context.Context, req assistant.Request) []assistant.Slice {
	var sources []assistant.Source
	if s.sources != nil {
		sources = s.sources.Sources(req.Scope)
	}

	results := make([]assistant.Slice, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src assistant.Source) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.L(ctx).Error("Assistant context source panicked", zap.String("source", src.Name()), zap.Any("panic", r))
				}
			}()

			sctx, span := telemetry.StartSpan(ctx, "assistant", "source", telemetry.AttrSource, src.Name())
			defer span.End()

			data, err := src.Fetch(sctx, req)
			if err != nil {
				telemetry.RecordError(span, err)
				logger.L(ctx).Warn("Assistant context source failed", zap.String("source", src.Name()), zap.Error(err))
				return
			}
			results[i] = assistant.Slice{Name: src.Name(), Data: data}
		}(i, src)
	}
	wg.Wait()

	out := make([]assistant.Slice, 0, len(results))
	for _, r := range results {
		if r.Name != "" {
			out = append(out, r)
		}
	}
	return out
}
