package adapter

import (
	"context"
	"time"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// EmailQueueRepository is the email outbox.
type EmailQueueRepository interface {
	// Create adds a job to the outbox.
	Create(ctx context.Context, job *entity.EmailJob) error

	// ClaimDue moves up to limit pending jobs scheduled at or before now to
	// processing and returns them, oldest schedule first. A claimed job is not
	// returned to another caller.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	// Update saves the job's status after a delivery attempt.
	Update(ctx context.Context, job *entity.EmailJob) error

	// PurgeFinished deletes sent and failed jobs processed before the cutoff.
	PurgeFinished(ctx context.Context, before time.Time) (int64, error)
}
