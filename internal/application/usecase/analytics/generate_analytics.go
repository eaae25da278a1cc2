package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// GenerateAnalyticsInput represents the input for analytics generation.
type GenerateAnalyticsInput struct {
	UserID   uuid.UUID
	BankName string
}

// GenerateAnalyticsOutput holds the freshly generated summaries, one per period,
// and the user's full history newest first.
type GenerateAnalyticsOutput struct {
	Generated []*entity.AnalyticsSummary
	History   []*entity.AnalyticsSummary
}

// GenerateAnalyticsUseCase recomputes the four standard summaries for a bank.
type GenerateAnalyticsUseCase struct {
	transactionRepo adapter.TransactionRepository
	analyticsRepo   adapter.AnalyticsRepository
	now             func() time.Time
}

// NewGenerateAnalyticsUseCase creates a new GenerateAnalyticsUseCase instance.
// A nil clock defaults to the current UTC time.
func NewGenerateAnalyticsUseCase(
	transactionRepo adapter.TransactionRepository,
	analyticsRepo adapter.AnalyticsRepository,
	now func() time.Time,
) *GenerateAnalyticsUseCase {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &GenerateAnalyticsUseCase{
		transactionRepo: transactionRepo,
		analyticsRepo:   analyticsRepo,
		now:             now,
	}
}

// Execute performs the generation. Each summary replaces any earlier one for the
// same window, so running it twice leaves one row per window.
func (uc *GenerateAnalyticsUseCase) Execute(ctx context.Context, input GenerateAnalyticsInput) (*GenerateAnalyticsOutput, error) {
	bank := strings.TrimSpace(input.BankName)
	if bank == "" {
		return nil, domainerror.NewAnalyticsError(
			domainerror.ErrCodeMissingAnalyticsFields,
			"bank_name is required",
			nil,
		)
	}

	transactions, err := uc.transactionRepo.FindByUserAndBank(ctx, input.UserID, bank)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	now := uc.now()
	windows := StandardWindows(now)
	generated := make([]*entity.AnalyticsSummary, 0, len(windows))

	for _, w := range windows {
		summary := Summarize(input.UserID, bank, w, transactions, now)
		if err := uc.analyticsRepo.Replace(ctx, summary); err != nil {
			return nil, fmt.Errorf("failed to store %s summary: %w", w.Period, err)
		}
		generated = append(generated, summary)
	}

	history, err := uc.analyticsRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics history: %w", err)
	}

	return &GenerateAnalyticsOutput{Generated: generated, History: history}, nil
}
