package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/email/templates"
)

// WorkerConfig tunes the outbox worker. Zero fields take defaults.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	Now          func() time.Time
}

func (c WorkerConfig) withDefaults() WorkerConfig {
	if c.PollInterval <= 0 {
		c.PollInterval = 5 * time.Second
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 10
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Worker drains the email outbox.
type Worker struct {
	queue    adapter.EmailQueueRepository
	sender   adapter.EmailSender
	renderer *templates.Renderer
	cfg      WorkerConfig
}

func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, cfg WorkerConfig) *Worker {
	return &Worker{queue: queue, sender: sender, renderer: renderer, cfg: cfg.withDefaults()}
}

// Start polls until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started", "poll_interval", w.cfg.PollInterval, "batch_size", w.cfg.BatchSize)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		w.drain(ctx)
		select {
		case <-ctx.Done():
			slog.Info("Email worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// ProcessNow runs one claim-and-send pass synchronously.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.drain(ctx)
}

func (w *Worker) drain(ctx context.Context) {
	jobs, err := w.queue.ClaimDue(ctx, w.cfg.Now().UTC(), w.cfg.BatchSize)
	if err != nil {
		slog.Error("Failed to claim email jobs", "error", err)
		return
	}
	for _, job := range jobs {
		if ctx.Err() != nil {
			// Claimed but unsent jobs stay in processing; the caller is shutting down.
			return
		}
		w.deliver(ctx, job)
	}
}

func (w *Worker) deliver(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With("job_id", job.ID, "template", job.TemplateType)

	messageID, err := w.send(ctx, job)
	if err != nil {
		var emailErr *domainerror.EmailError
		permanent := errors.As(err, &emailErr) && emailErr.Permanent()
		job.Failed(err, permanent, w.cfg.Now())
		if job.Finished() {
			logger.Warn("Email given up", "attempts", job.Attempts, "error", err)
		} else {
			logger.Info("Email send failed, will retry", "attempts", job.Attempts, "retry_at", job.ScheduledAt, "error", err)
		}
	} else {
		job.Delivered(messageID, w.cfg.Now())
		logger.Info("Email sent", "provider_message_id", messageID)
	}

	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to record email outcome", "status", job.Status, "error", err)
	}
}

func (w *Worker) send(ctx context.Context, job *entity.EmailJob) (string, error) {
	name := string(job.TemplateType)
	if !w.renderer.Has(name) {
		return "", domainerror.NewEmailError(domainerror.ErrCodeUnknownTemplate, name, domainerror.ErrUnknownTemplate)
	}
	html, text, err := w.renderer.Render(name, job.TemplateData)
	if err != nil {
		return "", domainerror.NewEmailError(domainerror.ErrCodeUnknownTemplate, "render failed", err)
	}
	return w.sender.Send(ctx, adapter.OutgoingEmail{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
}
