package setting

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// UpsertSettingsInput represents the input for creating or updating a bank's settings.
type UpsertSettingsInput struct {
	UserID        uuid.UUID
	BankName      string
	MinBalance    *decimal.Decimal
	ActualBalance *decimal.Decimal
	Category      string
	Limit         *decimal.Decimal
}

// UpsertSettingsOutput lists the rows that were created or updated.
type UpsertSettingsOutput struct {
	Settings []*entity.Setting
}

// UpsertSettingsUseCase finds or creates the setting rows named by the input.
// Writers for the same (user, bank) are serialized so find-or-create never
// leaves two rows of one kind.
type UpsertSettingsUseCase struct {
	settingRepo adapter.SettingRepository
	locker      adapter.IngestLocker
}

// NewUpsertSettingsUseCase creates a new UpsertSettingsUseCase instance.
func NewUpsertSettingsUseCase(settingRepo adapter.SettingRepository, locker adapter.IngestLocker) *UpsertSettingsUseCase {
	return &UpsertSettingsUseCase{settingRepo: settingRepo, locker: locker}
}

// Execute performs the upsert.
func (uc *UpsertSettingsUseCase) Execute(ctx context.Context, input UpsertSettingsInput) (*UpsertSettingsOutput, error) {
	bank := strings.TrimSpace(input.BankName)
	if bank == "" {
		return nil, domainerror.NewSettingError(
			domainerror.ErrCodeMissingSettingFields,
			"bank_name is required",
			nil,
		)
	}

	category := strings.TrimSpace(input.Category)
	if input.MinBalance == nil && input.ActualBalance == nil && category == "" {
		return nil, domainerror.NewSettingError(
			domainerror.ErrCodeNothingToSet,
			"Must provide category, min_balance or actual_balance",
			domainerror.ErrNothingToSet,
		)
	}

	for _, v := range []*decimal.Decimal{input.MinBalance, input.Limit} {
		if err := validateThreshold(v); err != nil {
			return nil, err
		}
	}

	unlock, err := uc.locker.Lock(ctx, lockKey(input.UserID, bank))
	if err != nil {
		return nil, fmt.Errorf("failed to acquire settings lock: %w", err)
	}
	defer unlock()

	settings, err := uc.settingRepo.Upsert(ctx, adapter.UpsertSettingsInput{
		UserID:        input.UserID,
		BankName:      bank,
		MinBalance:    input.MinBalance,
		ActualBalance: input.ActualBalance,
		Category:      category,
		Limit:         input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	return &UpsertSettingsOutput{Settings: settings}, nil
}

func lockKey(userID uuid.UUID, bank string) string {
	return "settings|" + userID.String() + "|" + strings.ToLower(bank)
}

func validateThreshold(v *decimal.Decimal) error {
	if v != nil && v.IsNegative() {
		return domainerror.NewSettingError(
			domainerror.ErrCodeInvalidThreshold,
			"min_balance and limit must not be negative",
			domainerror.ErrNegativeThreshold,
		)
	}
	return nil
}
