package models

import (
	"time"

	"github.com/atlas/backend/internal/domain/survey"
	"github.com/google/uuid"
)

// SurveyLinkModel is the persistence model for a delivery-survey Link.
type SurveyLinkModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Token        string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Phone        string    `gorm:"type:varchar(50)"`
	Status       string    `gorm:"type:varchar(20);not null"`
	MessageID    string    `gorm:"type:varchar(200)"`
	FailedReason string    `gorm:"type:varchar(500)"`
	SentAt       *time.Time
	ExpiresAt    time.Time `gorm:"not null"`
	ConsumedAt   *time.Time
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SurveyLinkModel) TableName() string {
	return "delivery_survey_links"
}

// ToDomain converts the persistence model to a domain Link
func (m *SurveyLinkModel) ToDomain() *survey.Link {
	return &survey.Link{
		ID:           m.ID,
		TenantID:     m.TenantID,
		OrderID:      m.OrderID,
		Token:        m.Token,
		Phone:        m.Phone,
		Status:       survey.Status(m.Status),
		MessageID:    m.MessageID,
		FailedReason: m.FailedReason,
		SentAt:       m.SentAt,
		ExpiresAt:    m.ExpiresAt,
		ConsumedAt:   m.ConsumedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Link
func (m *SurveyLinkModel) FromDomain(l *survey.Link) {
	m.ID = l.ID
	m.TenantID = l.TenantID
	m.OrderID = l.OrderID
	m.Token = l.Token
	m.Phone = l.Phone
	m.Status = string(l.Status)
	m.MessageID = l.MessageID
	m.FailedReason = l.FailedReason
	m.SentAt = l.SentAt
	m.ExpiresAt = l.ExpiresAt
	m.ConsumedAt = l.ConsumedAt
	m.CreatedAt = l.CreatedAt
	m.UpdatedAt = l.UpdatedAt
}

// SurveyLinkModelFromDomain creates a new persistence model from domain entity
func SurveyLinkModelFromDomain(l *survey.Link) *SurveyLinkModel {
	m := &SurveyLinkModel{}
	m.FromDomain(l)
	return m
}

// SurveyResponseModel is one submitted rating. link_id is unique so a link
// can never hold two responses.
type SurveyResponseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	LinkID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SurveyResponseModel) TableName() string {
	return "delivery_survey_responses"
}

// SurveyResponseModelFromDomain creates a new persistence model from domain entity
func SurveyResponseModelFromDomain(r *survey.Response) *SurveyResponseModel {
	return &SurveyResponseModel{
		ID:        r.ID,
		TenantID:  r.TenantID,
		LinkID:    r.LinkID,
		OrderID:   r.OrderID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
