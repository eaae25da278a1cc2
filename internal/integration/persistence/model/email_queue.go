package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// EmailQueueModel is one row of the email outbox. TemplateData is a JSON
// column (jsonb on postgres).
type EmailQueueModel struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey"`
	TemplateType      string            `gorm:"type:varchar(50);not null;index"`
	RecipientEmail    string            `gorm:"type:varchar(255);not null"`
	RecipientName     string            `gorm:"type:varchar(255)"`
	Subject           string            `gorm:"type:varchar(500);not null"`
	TemplateData      datatypes.JSONMap `gorm:"not null"`
	Status            string            `gorm:"type:varchar(20);not null;index:idx_email_queue_due,priority:1"`
	Attempts          int               `gorm:"not null"`
	MaxAttempts       int               `gorm:"not null"`
	LastError         string            `gorm:"type:text"`
	ProviderMessageID string            `gorm:"type:varchar(100)"`
	CreatedAt         time.Time         `gorm:"not null"`
	ScheduledAt       time.Time         `gorm:"not null;index:idx_email_queue_due,priority:2"`
	ProcessedAt       *time.Time
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity converts an EmailQueueModel to a domain EmailJob entity.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	data := map[string]any(m.TemplateData)
	if data == nil {
		data = map[string]any{}
	}
	return &entity.EmailJob{
		ID:                m.ID,
		TemplateType:      entity.EmailTemplateType(m.TemplateType),
		RecipientEmail:    m.RecipientEmail,
		RecipientName:     m.RecipientName,
		Subject:           m.Subject,
		TemplateData:      data,
		Status:            entity.EmailStatus(m.Status),
		Attempts:          m.Attempts,
		MaxAttempts:       m.MaxAttempts,
		LastError:         m.LastError,
		ProviderMessageID: m.ProviderMessageID,
		CreatedAt:         m.CreatedAt,
		ScheduledAt:       m.ScheduledAt,
		ProcessedAt:       m.ProcessedAt,
	}
}

// EmailQueueModelFromEntity creates an EmailQueueModel from a domain EmailJob entity.
func EmailQueueModelFromEntity(job *entity.EmailJob) *EmailQueueModel {
	return &EmailQueueModel{
		ID:                job.ID,
		TemplateType:      string(job.TemplateType),
		RecipientEmail:    job.RecipientEmail,
		RecipientName:     job.RecipientName,
		Subject:           job.Subject,
		TemplateData:      datatypes.JSONMap(job.TemplateData),
		Status:            string(job.Status),
		Attempts:          job.Attempts,
		MaxAttempts:       job.MaxAttempts,
		LastError:         job.LastError,
		ProviderMessageID: job.ProviderMessageID,
		CreatedAt:         job.CreatedAt,
		ScheduledAt:       job.ScheduledAt,
		ProcessedAt:       job.ProcessedAt,
	}
}
