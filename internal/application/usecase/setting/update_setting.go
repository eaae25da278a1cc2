package setting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// UpdateSettingInput represents the input for updating one setting row.
type UpdateSettingInput struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	MinBalance    *decimal.Decimal
	ActualBalance *decimal.Decimal
	Limit         *decimal.Decimal
}

// UpdateSettingUseCase updates the thresholds of a single setting row.
type UpdateSettingUseCase struct {
	settingRepo adapter.SettingRepository
}

// NewUpdateSettingUseCase creates a new UpdateSettingUseCase instance.
func NewUpdateSettingUseCase(settingRepo adapter.SettingRepository) *UpdateSettingUseCase {
	return &UpdateSettingUseCase{settingRepo: settingRepo}
}

// Execute performs the update.
func (uc *UpdateSettingUseCase) Execute(ctx context.Context, input UpdateSettingInput) (*entity.Setting, error) {
	for _, v := range []*decimal.Decimal{input.MinBalance, input.Limit} {
		if err := validateThreshold(v); err != nil {
			return nil, err
		}
	}

	setting, err := findOwned(ctx, uc.settingRepo, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.MinBalance != nil {
		setting.MinBalance = input.MinBalance
	}
	if input.ActualBalance != nil {
		setting.ActualBalance = input.ActualBalance
	}
	if input.Limit != nil {
		setting.Limit = input.Limit
	}
	setting.UpdatedAt = time.Now().UTC()

	if err := uc.settingRepo.Update(ctx, setting); err != nil {
		return nil, fmt.Errorf("failed to update setting: %w", err)
	}
	return setting, nil
}

// DeleteSettingInput represents the input for deleting one setting row.
type DeleteSettingInput struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

// DeleteSettingUseCase removes a single setting row.
type DeleteSettingUseCase struct {
	settingRepo adapter.SettingRepository
}

// NewDeleteSettingUseCase creates a new DeleteSettingUseCase instance.
func NewDeleteSettingUseCase(settingRepo adapter.SettingRepository) *DeleteSettingUseCase {
	return &DeleteSettingUseCase{settingRepo: settingRepo}
}

// Execute performs the deletion.
func (uc *DeleteSettingUseCase) Execute(ctx context.Context, input DeleteSettingInput) error {
	setting, err := findOwned(ctx, uc.settingRepo, input.ID, input.UserID)
	if err != nil {
		return err
	}
	if err := uc.settingRepo.Delete(ctx, setting.ID); err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}

func findOwned(ctx context.Context, repo adapter.SettingRepository, id, userID uuid.UUID) (*entity.Setting, error) {
	setting, err := repo.FindByID(ctx, id)
	if err != nil || setting.UserID != userID {
		return nil, domainerror.NewSettingError(
			domainerror.ErrCodeSettingNotFound,
			"Setting not found",
			domainerror.ErrSettingNotFound,
		)
	}
	return setting, nil
}
