package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/persistence/model"
)

// analyticsRepository implements the adapter.AnalyticsRepository interface.
type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository instance.
func NewAnalyticsRepository(db *gorm.DB) adapter.AnalyticsRepository {
	return &analyticsRepository{
		db: db,
	}
}

// Replace swaps any summary stored for the same window with the given one.
// The upsert on the unique window index makes concurrent generations of one
// window converge on a single row.
func (r *analyticsRepository) Replace(ctx context.Context, summary *entity.AnalyticsSummary) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: windowColumns,
		DoUpdates: clause.AssignmentColumns([]string{
			"id", "total_income", "total_expense", "net_balance", "status", "generated_at",
		}),
	}).Create(model.AnalyticsSummaryFromEntity(summary)).Error
}

var windowColumns = []clause.Column{
	{Name: "user_id"}, {Name: "bank_name"}, {Name: "period"}, {Name: "start_date"}, {Name: "end_date"},
}

// FindByUser retrieves a user's summaries, newest generation first.
func (r *analyticsRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.AnalyticsSummary, error) {
	var summaryModels []model.AnalyticsSummaryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("generated_at DESC").
		Find(&summaryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	summaries := make([]*entity.AnalyticsSummary, len(summaryModels))
	for i := range summaryModels {
		summaries[i] = summaryModels[i].ToEntity()
	}
	return summaries, nil
}

// FindByID retrieves a summary by its ID.
func (r *analyticsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AnalyticsSummary, error) {
	var summaryModel model.AnalyticsSummaryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&summaryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSummaryNotFound
		}
		return nil, result.Error
	}
	return summaryModel.ToEntity(), nil
}

// Delete removes a summary.
func (r *analyticsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.AnalyticsSummaryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrSummaryNotFound
	}
	return nil
}
