package adapter

import (
	"context"
)

// OutgoingEmail is a rendered email ready for the provider.
type OutgoingEmail struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// EmailSender delivers rendered email through an external provider.
type EmailSender interface {
	// Send returns the provider's message id.
	Send(ctx context.Context, email OutgoingEmail) (string, error)
}

// EmailService queues notification emails for the worker.
type EmailService interface {
	QueuePasswordResetEmail(ctx context.Context, input QueuePasswordResetInput) error

	// QueueBudgetAlertEmail queues one digest of the alerts raised by an
	// ingested message. An empty alert list queues nothing.
	QueueBudgetAlertEmail(ctx context.Context, input QueueBudgetAlertInput) error
}

// QueuePasswordResetInput represents the input for queueing a password reset email.
type QueuePasswordResetInput struct {
	UserEmail string
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// QueueBudgetAlertInput represents the input for queueing a budget alert email.
type QueueBudgetAlertInput struct {
	UserEmail string
	UserName  string
	BankName  string
	Alerts    []string
}
