package survey

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status is the dispatch state of a survey link
type Status string

const (
	StatusPending   Status = "pending"
	StatusSent      Status = "sent"
	StatusFailed    Status = "failed"
	StatusCompleted Status = "completed"
)

// DefaultTTL is how long a link stays valid after issuance
const DefaultTTL = 7 * 24 * time.Hour

// Errors surfaced to callers
var (
	ErrAlreadySubmitted = shared.NewDomainError(shared.ErrConflict.Code, "This survey has already been answered")
	ErrExpired          = shared.NewDomainError(shared.ErrConflict.Code, "This survey link has expired")
)

// Link is a one-time survey token tied to an order
type Link struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	OrderID      uuid.UUID
	Token        string
	Phone        string
	Status       Status
	MessageID    string
	FailedReason string
	SentAt       *time.Time
	ExpiresAt    time.Time
	ConsumedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewLink mints a pending link with a fresh random token
func NewLink(tenantID, orderID uuid.UUID, phone string, ttl time.Duration, now time.Time) *Link {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Link{
		ID:        uuid.New(),
		TenantID:  tenantID,
		OrderID:   orderID,
		Token:     strings.ReplaceAll(uuid.NewString(), "-", ""),
		Phone:     phone,
		Status:    StatusPending,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reusable reports whether the link can be handed out again instead of minting a new one
func (l *Link) Reusable() bool {
	return l.ConsumedAt == nil && l.Status != StatusFailed && l.Status != StatusCompleted
}

// MarkSent records a successful dispatch
func (l *Link) MarkSent(messageID string, at time.Time) {
	l.Status = StatusSent
	l.MessageID = messageID
	l.FailedReason = ""
	l.SentAt = &at
	l.UpdatedAt = at
}

// MarkFailed records why dispatch failed
func (l *Link) MarkFailed(reason string, at time.Time) {
	l.Status = StatusFailed
	l.FailedReason = reason
	l.UpdatedAt = at
}

// CheckSubmittable validates a submission against the link state.
// Expiry is only checked when enforceExpiry is set.
func (l *Link) CheckSubmittable(now time.Time, enforceExpiry bool) error {
	if l.ConsumedAt != nil || l.Status == StatusCompleted {
		return ErrAlreadySubmitted
	}
	if enforceExpiry && !now.Before(l.ExpiresAt) {
		return ErrExpired
	}
	return nil
}

// URL builds the public survey URL for the link
func (l *Link) URL(baseURL string) string {
	return fmt.Sprintf("%s/encuesta/%s", strings.TrimRight(baseURL, "/"), l.Token)
}

// Response is a customer's answer to a survey
type Response struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	LinkID    uuid.UUID
	OrderID   uuid.UUID
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// NewResponse validates and creates a response for link
func NewResponse(l *Link, rating int, comment string, now time.Time) (*Response, error) {
	if rating < 1 || rating > 5 {
		return nil, shared.NewValidationError("rating must be between 1 and 5")
	}
	comment = strings.TrimSpace(comment)
	if len([]rune(comment)) > 2000 {
		return nil, shared.NewValidationError("comment cannot exceed 2000 characters")
	}
	return &Response{
		ID:        uuid.New(),
		TenantID:  l.TenantID,
		LinkID:    l.ID,
		OrderID:   l.OrderID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
	}, nil
}

// Message renders the WhatsApp text for a survey link
func Message(customerName, url string) string {
	greeting := "Hola"
	if name := strings.TrimSpace(customerName); name != "" {
		greeting = "Hola " + name
	}
	return fmt.Sprintf("%s, gracias por tu compra. ¿Nos cuentas cómo fue tu entrega? Califícanos aquí: %s", greeting, url)
}

// Repository persists links and responses
type Repository interface {
	// FindReusable returns the newest reusable link of an order, or shared.ErrNotFound
	FindReusable(ctx context.Context, tenantID, orderID uuid.UUID) (*Link, error)
	FindByToken(ctx context.Context, token string) (*Link, error)
	Create(ctx context.Context, l *Link) error
	Update(ctx context.Context, l *Link) error
	// Consume atomically stamps consumed_at on an unconsumed link and stores
	// the response. It returns ErrAlreadySubmitted when the link was taken.
	Consume(ctx context.Context, l *Link, r *Response, at time.Time) error
	CountResponses(ctx context.Context, linkID uuid.UUID) (int64, error)
}

// Dispatcher delivers a survey message to a phone number
type Dispatcher interface {
	Send(ctx context.Context, phone, text string) (messageID string, err error)
}
