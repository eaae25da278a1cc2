package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/persistence/model"
)

// settingRepository implements the adapter.SettingRepository interface.
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository instance.
func NewSettingRepository(db *gorm.DB) adapter.SettingRepository {
	return &settingRepository{
		db: db,
	}
}

// Upsert merges the given thresholds into the bank's rows. Each kind of value
// lives in its own row: one for the minimum balance, one for the actual
// balance and one per category limit.
func (r *settingRepository) Upsert(ctx context.Context, input adapter.UpsertSettingsInput) ([]*entity.Setting, error) {
	var saved []*entity.Setting

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		base := tx.Where("user_id = ? AND bank_name = ?", input.UserID, input.BankName)

		if input.MinBalance != nil {
			row, err := findOrNew(base.Session(&gorm.Session{}), "min_balance IS NOT NULL", input)
			if err != nil {
				return err
			}
			row.MinBalance = input.MinBalance
			if err := saveRow(tx, row); err != nil {
				return err
			}
			saved = append(saved, row.ToEntity())
		}

		if input.ActualBalance != nil {
			row, err := findOrNew(base.Session(&gorm.Session{}), "actual_balance IS NOT NULL", input)
			if err != nil {
				return err
			}
			row.ActualBalance = input.ActualBalance
			if err := saveRow(tx, row); err != nil {
				return err
			}
			saved = append(saved, row.ToEntity())
		}

		// A category without a limit still gets its row; the limit stays empty.
		if input.Category != "" {
			row, err := findOrNew(base.Session(&gorm.Session{}), "category = ?", input, input.Category)
			if err != nil {
				return err
			}
			row.Category = input.Category
			row.Limit = input.Limit
			if err := saveRow(tx, row); err != nil {
				return err
			}
			saved = append(saved, row.ToEntity())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func findOrNew(query *gorm.DB, condition string, input adapter.UpsertSettingsInput, args ...any) (*model.SettingModel, error) {
	var row model.SettingModel
	result := query.Where(condition, args...).Order("created_at ASC").Limit(1).Find(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected > 0 {
		return &row, nil
	}
	return model.SettingFromEntity(entity.NewSetting(input.UserID, input.BankName)), nil
}

func saveRow(tx *gorm.DB, row *model.SettingModel) error {
	row.UpdatedAt = time.Now().UTC()
	return tx.Save(row).Error
}

// FindByID retrieves a setting row by its ID.
func (r *settingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Setting, error) {
	var settingModel model.SettingModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&settingModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSettingNotFound
		}
		return nil, result.Error
	}
	return settingModel.ToEntity(), nil
}

// FindByUserAndBank retrieves all setting rows for one bank in creation order.
func (r *settingRepository) FindByUserAndBank(ctx context.Context, userID uuid.UUID, bankName string) ([]*entity.Setting, error) {
	var settingModels []model.SettingModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND bank_name = ?", userID, bankName).
		Order("created_at ASC").
		Find(&settingModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toSettingEntities(settingModels), nil
}

// FindCategoryLimits retrieves all category limit rows of a user.
func (r *settingRepository) FindCategoryLimits(ctx context.Context, userID uuid.UUID) ([]*entity.Setting, error) {
	var settingModels []model.SettingModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND category <> '' AND limit_amount IS NOT NULL", userID).
		Order("created_at ASC").
		Find(&settingModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toSettingEntities(settingModels), nil
}

// Update updates an existing setting row.
func (r *settingRepository) Update(ctx context.Context, setting *entity.Setting) error {
	settingModel := model.SettingFromEntity(setting)
	return r.db.WithContext(ctx).Save(settingModel).Error
}

// Delete removes a setting row.
func (r *settingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.SettingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrSettingNotFound
	}
	return nil
}

func toSettingEntities(models []model.SettingModel) []*entity.Setting {
	settings := make([]*entity.Setting, len(models))
	for i := range models {
		settings[i] = models[i].ToEntity()
	}
	return settings
}
