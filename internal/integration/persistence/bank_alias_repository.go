package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	"github.com/personal-ledger/backend/internal/integration/persistence/model"
)

type bankAliasRepository struct {
	db *gorm.DB
}

// NewBankAliasRepository creates a new bank alias repository instance.
func NewBankAliasRepository(db *gorm.DB) adapter.BankAliasRepository {
	return &bankAliasRepository{
		db: db,
	}
}

func (r *bankAliasRepository) Create(ctx context.Context, alias *entity.BankAlias) error {
	return r.db.WithContext(ctx).Create(model.BankAliasFromEntity(alias)).Error
}

func (r *bankAliasRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BankAlias, error) {
	var aliasModels []model.BankAliasModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&aliasModels)
	if result.Error != nil {
		return nil, result.Error
	}

	aliases := make([]*entity.BankAlias, len(aliasModels))
	for i := range aliasModels {
		aliases[i] = aliasModels[i].ToEntity()
	}
	return aliases, nil
}

func (r *bankAliasRepository) ExistsByAlias(ctx context.Context, userID uuid.UUID, alias string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.BankAliasModel{}).
		Where("user_id = ? AND alias = ?", userID, alias).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *bankAliasRepository) DeleteByAlias(ctx context.Context, userID uuid.UUID, alias string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND alias = ?", userID, alias).
		Delete(&model.BankAliasModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
