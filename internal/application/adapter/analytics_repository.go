package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// AnalyticsRepository defines the interface for analytics summary persistence.
type AnalyticsRepository interface {
	// Replace stores the summary in place of any with the same (user, bank,
	// period, start date, end date) window, atomically.
	Replace(ctx context.Context, summary *entity.AnalyticsSummary) error

	// FindByUser retrieves a user's summaries, newest generation first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.AnalyticsSummary, error)

	// FindByID retrieves a summary by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AnalyticsSummary, error)

	// Delete removes a summary.
	Delete(ctx context.Context, id uuid.UUID) error
}
