package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// ListAnalyticsUseCase returns a user's stored summaries, newest first.
type ListAnalyticsUseCase struct {
	analyticsRepo adapter.AnalyticsRepository
}

// NewListAnalyticsUseCase creates a new ListAnalyticsUseCase instance.
func NewListAnalyticsUseCase(analyticsRepo adapter.AnalyticsRepository) *ListAnalyticsUseCase {
	return &ListAnalyticsUseCase{analyticsRepo: analyticsRepo}
}

// Execute performs the listing.
func (uc *ListAnalyticsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.AnalyticsSummary, error) {
	history, err := uc.analyticsRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics history: %w", err)
	}
	return history, nil
}

// DeleteAnalyticsInput represents the input for deleting a summary.
type DeleteAnalyticsInput struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

// DeleteAnalyticsUseCase removes one stored summary.
type DeleteAnalyticsUseCase struct {
	analyticsRepo adapter.AnalyticsRepository
}

// NewDeleteAnalyticsUseCase creates a new DeleteAnalyticsUseCase instance.
func NewDeleteAnalyticsUseCase(analyticsRepo adapter.AnalyticsRepository) *DeleteAnalyticsUseCase {
	return &DeleteAnalyticsUseCase{analyticsRepo: analyticsRepo}
}

// Execute performs the deletion.
func (uc *DeleteAnalyticsUseCase) Execute(ctx context.Context, input DeleteAnalyticsInput) error {
	summary, err := uc.analyticsRepo.FindByID(ctx, input.ID)
	if err != nil || summary.UserID != input.UserID {
		return domainerror.NewAnalyticsError(
			domainerror.ErrCodeSummaryNotFound,
			"Analytics record not found",
			domainerror.ErrSummaryNotFound,
		)
	}

	if err := uc.analyticsRepo.Delete(ctx, summary.ID); err != nil {
		return fmt.Errorf("failed to delete analytics summary: %w", err)
	}
	return nil
}
