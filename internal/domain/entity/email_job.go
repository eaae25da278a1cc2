package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the lifecycle state of a queued email.
// pending -> processing -> sent | failed, with processing falling back to
// pending while retries remain.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names the template an email is rendered with.
type EmailTemplateType string

const (
	TemplatePasswordReset EmailTemplateType = "password_reset"
	TemplateBudgetAlert   EmailTemplateType = "budget_alert"
)

// DefaultEmailAttempts is how many sends a job gets before it is given up.
const DefaultEmailAttempts = 3

// emailBackoff is the wait after the nth failed attempt; the last entry repeats.
var emailBackoff = []time.Duration{30 * time.Second, 2 * time.Minute, 10 * time.Minute}

// EmailJob is an email waiting in the outbox. Use cases enqueue jobs and the
// email worker delivers them, so a slow provider never blocks a request.
type EmailJob struct {
	ID                uuid.UUID
	TemplateType      EmailTemplateType
	RecipientEmail    string
	RecipientName     string
	Subject           string
	TemplateData      map[string]any
	Status            EmailStatus
	Attempts          int
	MaxAttempts       int
	LastError         string
	ProviderMessageID string
	CreatedAt         time.Time
	ScheduledAt       time.Time
	ProcessedAt       *time.Time
}

// NewEmailJob creates a pending job due immediately.
func NewEmailJob(templateType EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]any, now time.Time) *EmailJob {
	if data == nil {
		data = map[string]any{}
	}
	now = now.UTC()
	return &EmailJob{
		ID:             uuid.New(),
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    DefaultEmailAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// Delivered records a successful send.
func (e *EmailJob) Delivered(providerMessageID string, at time.Time) {
	at = at.UTC()
	e.Status = EmailStatusSent
	e.ProviderMessageID = providerMessageID
	e.LastError = ""
	e.ProcessedAt = &at
}

// Failed records a failed send. A permanent failure or the last allowed
// attempt ends the job; otherwise it is rescheduled with backoff.
func (e *EmailJob) Failed(err error, permanent bool, at time.Time) {
	at = at.UTC()
	e.Attempts++
	e.LastError = err.Error()

	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &at
		return
	}

	delay := emailBackoff[len(emailBackoff)-1]
	if e.Attempts-1 < len(emailBackoff) {
		delay = emailBackoff[e.Attempts-1]
	}
	e.Status = EmailStatusPending
	e.ScheduledAt = at.Add(delay)
}

// Finished reports whether the job will not be picked up again.
func (e *EmailJob) Finished() bool {
	return e.Status == EmailStatusSent || e.Status == EmailStatusFailed
}
