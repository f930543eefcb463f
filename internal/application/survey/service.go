// Package survey issues and collects post-delivery surveys.
package survey

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atlas/backend/internal/domain/crm"
	"github.com/atlas/backend/internal/domain/sales"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/domain/survey"
	"github.com/atlas/backend/internal/infrastructure/logger"
	"github.com/atlas/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IssueInput is the body of a survey issuance
type IssueInput struct {
	Resend bool `json:"resend"`
}

// IssueResult describes the link handed out for an order
type IssueResult struct {
	LinkID       uuid.UUID `json:"link_id"`
	Token        string    `json:"token"`
	URL          string    `json:"url"`
	Status       string    `json:"status"`
	Reused       bool      `json:"reused"`
	MessageID    string    `json:"message_id,omitempty"`
	FailedReason string    `json:"failed_reason,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SubmitInput is the body of a survey submission
type SubmitInput struct {
	Token   string `json:"token" binding:"required,max=64"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// SubmitResult acknowledges a stored response
type SubmitResult struct {
	ResponseID uuid.UUID `json:"response_id"`
	OrderID    uuid.UUID `json:"order_id"`
}

// LinkView is what the public survey form needs to render
type LinkView struct {
	Token        string    `json:"token"`
	Status       string    `json:"status"`
	Completed    bool      `json:"completed"`
	Expired      bool      `json:"expired"`
	CustomerName string    `json:"customer_name,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// OrderReader loads the order a survey is about
type OrderReader interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*sales.Order, error)
}

// CustomerReader loads the customer of an order
type CustomerReader interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*crm.Customer, error)
}

// Config tunes link issuance
type Config struct {
	BaseURL       string
	LinkTTL       time.Duration
	EnforceExpiry bool
}

// Service issues survey links and records answers
type Service struct {
	links      survey.Repository
	orders     OrderReader
	customers  CustomerReader
	dispatcher survey.Dispatcher
	cfg        Config
	now        func() time.Time
}

// NewService creates a new survey Service
func NewService(links survey.Repository, orders OrderReader, customers CustomerReader, dispatcher survey.Dispatcher, cfg Config) *Service {
	if cfg.LinkTTL <= 0 {
		cfg.LinkTTL = survey.DefaultTTL
	}
	return &Service{
		links:      links,
		orders:     orders,
		customers:  customers,
		dispatcher: dispatcher,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Issue hands out a survey link for an order and sends it to the
// customer. An open link is reused unless resend is requested. Dispatch
// failures mark the link failed but still return its URL.
func (s *Service) Issue(ctx context.Context, tenantID, orderID uuid.UUID, in IssueInput) (*IssueResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "survey", "issue", telemetry.AttrOrderID, orderID)
	defer span.End()

	order, err := s.orders.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	phone, name := s.recipient(ctx, order)

	if !in.Resend {
		link, err := s.links.FindReusable(ctx, tenantID, orderID)
		switch {
		case err == nil:
			telemetry.SetAttributes(span, telemetry.AttrSurveyLink, link.ID)
			if link.Status == survey.StatusSent {
				return s.result(link, true), nil
			}
			if err := s.dispatch(ctx, link, phone, name); err != nil {
				return nil, err
			}
			return s.result(link, true), nil
		case !errors.Is(err, shared.ErrNotFound):
			return nil, err
		}
	}

	link := survey.NewLink(tenantID, orderID, phone, s.cfg.LinkTTL, s.now())
	if err := s.links.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("create survey link: %w", err)
	}
	telemetry.SetAttributes(span, telemetry.AttrSurveyLink, link.ID)

	if err := s.dispatch(ctx, link, phone, name); err != nil {
		return nil, err
	}
	return s.result(link, false), nil
}

// recipient picks the phone and greeting name, preferring what the order
// recorded over the linked customer
func (s *Service) recipient(ctx context.Context, order *sales.Order) (phone, name string) {
	phone = strings.TrimSpace(order.CustomerPhone)
	name = strings.TrimSpace(order.CustomerName)
	if (phone != "" && name != "") || order.CustomerID == nil || s.customers == nil {
		return phone, name
	}

	c, err := s.customers.FindByID(ctx, order.TenantID, *order.CustomerID)
	if err != nil {
		logger.L(ctx).Warn("Survey customer lookup failed", zap.String("order_id", order.ID.String()), zap.Error(err))
		return phone, name
	}
	if phone == "" {
		phone = c.Phone
	}
	if name == "" {
		name = c.Name
	}
	return phone, name
}

// dispatch sends the survey message and records the outcome on the link.
// Only a failure to persist that outcome is returned.
func (s *Service) dispatch(ctx context.Context, link *survey.Link, phone, name string) error {
	link.Phone = phone
	url := link.URL(s.cfg.BaseURL)

	var sendErr error
	if s.dispatcher == nil {
		sendErr = shared.ErrNotConfigured
	} else {
		var messageID string
		messageID, sendErr = s.dispatcher.Send(ctx, phone, survey.Message(name, url))
		if sendErr == nil {
			link.MarkSent(messageID, s.now())
		}
	}
	if sendErr != nil {
		link.MarkFailed(sendErr.Error(), s.now())
		logger.L(ctx).Warn("Survey dispatch failed",
			zap.String("link_id", link.ID.String()),
			zap.String("order_id", link.OrderID.String()),
			zap.Error(sendErr))
	}

	if err := s.links.Update(ctx, link); err != nil {
		return fmt.Errorf("update survey link: %w", err)
	}
	return nil
}

func (s *Service) result(link *survey.Link, reused bool) *IssueResult {
	return &IssueResult{
		LinkID:       link.ID,
		Token:        link.Token,
		URL:          link.URL(s.cfg.BaseURL),
		Status:       string(link.Status),
		Reused:       reused,
		MessageID:    link.MessageID,
		FailedReason: link.FailedReason,
		ExpiresAt:    link.ExpiresAt,
	}
}

// Submit stores the customer's answer. A link accepts exactly one
// response; later submissions get survey.ErrAlreadySubmitted.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	token := strings.TrimSpace(in.Token)
	if token == "" {
		return nil, shared.NewValidationError("token is required")
	}
	link, err := s.links.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, "survey", "submit", telemetry.AttrSurveyLink, link.ID)
	defer span.End()

	now := s.now()
	if err := link.CheckSubmittable(now, s.cfg.EnforceExpiry); err != nil {
		return nil, err
	}
	resp, err := survey.NewResponse(link, in.Rating, in.Comment, now)
	if err != nil {
		return nil, err
	}
	if err := s.links.Consume(ctx, link, resp, now); err != nil {
		if !errors.Is(err, survey.ErrAlreadySubmitted) {
			telemetry.RecordError(span, err)
		}
		return nil, err
	}

	logger.L(ctx).Info("Survey answered",
		zap.String("link_id", link.ID.String()),
		zap.Int("rating", resp.Rating))
	return &SubmitResult{ResponseID: resp.ID, OrderID: link.OrderID}, nil
}

// Lookup returns the public state of a link
func (s *Service) Lookup(ctx context.Context, token string) (*LinkView, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, shared.ErrNotFound
	}
	link, err := s.links.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	view := &LinkView{
		Token:     link.Token,
		Status:    string(link.Status),
		Completed: link.ConsumedAt != nil || link.Status == survey.StatusCompleted,
		Expired:   s.cfg.EnforceExpiry && !s.now().Before(link.ExpiresAt),
		ExpiresAt: link.ExpiresAt,
	}
	if order, err := s.orders.FindByID(ctx, link.TenantID, link.OrderID); err == nil {
		_, view.CustomerName = s.recipient(ctx, order)
	}
	return view, nil
}
