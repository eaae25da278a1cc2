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

// GetSettingsInput represents the input for the grouped settings view.
type GetSettingsInput struct {
	UserID   uuid.UUID
	BankName string
}

// GetSettingsUseCase builds the per-bank view of thresholds and balances.
type GetSettingsUseCase struct {
	settingRepo     adapter.SettingRepository
	transactionRepo adapter.TransactionRepository
}

// NewGetSettingsUseCase creates a new GetSettingsUseCase instance.
func NewGetSettingsUseCase(settingRepo adapter.SettingRepository, transactionRepo adapter.TransactionRepository) *GetSettingsUseCase {
	return &GetSettingsUseCase{
		settingRepo:     settingRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the lookup. The calculated balance comes from the ledger;
// the total adds the user-entered actual balance on top of it.
func (uc *GetSettingsUseCase) Execute(ctx context.Context, input GetSettingsInput) (*entity.BankBalanceView, error) {
	bank := strings.TrimSpace(input.BankName)
	if bank == "" {
		return nil, domainerror.NewSettingError(
			domainerror.ErrCodeMissingSettingFields,
			"bank_name is required",
			nil,
		)
	}

	settings, err := uc.settingRepo.FindByUserAndBank(ctx, input.UserID, bank)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	transactions, err := uc.transactionRepo.FindByUserAndBank(ctx, input.UserID, bank)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	view := &entity.BankBalanceView{
		BankName:          bank,
		ActualBalance:     decimal.Zero,
		CalculatedBalance: CalculateBalance(transactions),
		CategoryLimits:    make([]*entity.Setting, 0),
	}

	actualSet := false
	for _, s := range settings {
		if s.MinBalance != nil && view.MinBalance == nil {
			view.MinBalance = s
		}
		if s.ActualBalance != nil && !actualSet {
			view.ActualBalance = *s.ActualBalance
			actualSet = true
		}
		if s.HasCategoryLimit() {
			view.CategoryLimits = append(view.CategoryLimits, s)
		}
	}
	view.TotalBalance = view.ActualBalance.Add(view.CalculatedBalance)

	return view, nil
}
