package email

import (
	"context"
	"fmt"
	"time"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// Service puts notification emails in the outbox. Nothing is sent here; the
// Worker picks jobs up.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
	now        func() time.Time
}

// NewService creates the outbox writer. now may be nil.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{queue: queue, appBaseURL: appBaseURL, now: now}
}

func (s *Service) QueuePasswordResetEmail(ctx context.Context, input adapter.QueuePasswordResetInput) error {
	job := entity.NewEmailJob(entity.TemplatePasswordReset, input.UserEmail, input.UserName,
		"Reset your password - Personal Ledger",
		map[string]any{
			"user_name":  input.UserName,
			"reset_url":  input.ResetURL,
			"expires_in": input.ExpiresIn,
		}, s.now())
	return s.enqueue(ctx, job)
}

// QueueBudgetAlertEmail queues one email carrying every alert raised by a
// single ingested message. No alerts, no email.
func (s *Service) QueueBudgetAlertEmail(ctx context.Context, input adapter.QueueBudgetAlertInput) error {
	if len(input.Alerts) == 0 {
		return nil
	}

	subject := fmt.Sprintf("%s: %d budget alert(s) - Personal Ledger", input.BankName, len(input.Alerts))
	job := entity.NewEmailJob(entity.TemplateBudgetAlert, input.UserEmail, input.UserName, subject,
		map[string]any{
			"user_name":     input.UserName,
			"bank_name":     input.BankName,
			"alerts":        append([]string(nil), input.Alerts...),
			"dashboard_url": s.appBaseURL + "/settings",
		}, s.now())
	return s.enqueue(ctx, job)
}

func (s *Service) enqueue(ctx context.Context, job *entity.EmailJob) error {
	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed,
			fmt.Sprintf("failed to queue %s email", job.TemplateType), err)
	}
	return nil
}

var _ adapter.EmailService = (*Service)(nil)
