// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/application/usecase/category"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// MaxNameLength is the maximum allowed length for transaction names.
const MaxNameLength = 255

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	Date        time.Time
	Name        string
	Amount      decimal.Decimal
	Direction   entity.Direction
	Description string
	Origin      entity.Origin
	Category    string
	BankName    string
}

// CreateTransactionUseCase handles manual transaction entry.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute performs the transaction creation. A missing category is filled in by the auto-tagger.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*entity.Transaction, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.BankName = strings.TrimSpace(input.BankName)
	input.Category = strings.TrimSpace(input.Category)

	if err := validate(input.Name, input.Amount, input.Direction, input.BankName, input.Date); err != nil {
		return nil, err
	}

	origin := input.Origin
	if origin == "" {
		origin = entity.OriginManual
	}

	if input.Category == "" {
		input.Category = uc.autoTag(ctx, input.UserID, input.Description)
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.Date,
		input.Name,
		input.Amount,
		input.Direction,
		input.Description,
		origin,
		input.Category,
		input.BankName,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// autoTag never fails the creation; a lookup error leaves the category empty.
func (uc *CreateTransactionUseCase) autoTag(ctx context.Context, userID uuid.UUID, description string) string {
	categories, err := uc.categoryRepo.FindByUser(ctx, userID)
	if err != nil {
		slog.Debug("Failed to fetch categories for auto-tagging", "userID", userID, "error", err)
		return ""
	}
	return category.StoredTag(description, categories)
}

func validate(name string, amount decimal.Decimal, direction entity.Direction, bankName string, date time.Time) error {
	if len(name) > MaxNameLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNameTooLong,
			fmt.Sprintf("name must not exceed %d characters", MaxNameLength),
			domainerror.ErrNameTooLong,
		)
	}
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if !direction.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDirection,
			"type must be 'credit' or 'debit'",
			domainerror.ErrInvalidDirection,
		)
	}
	if bankName == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingBankName,
			"bank_name is required",
			domainerror.ErrMissingBankName,
		)
	}
	if date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return nil
}

func notFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"Transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}

// findOwned hides other users' transactions behind not-found.
func findOwned(ctx context.Context, repo adapter.TransactionRepository, id, userID uuid.UUID) (*entity.Transaction, error) {
	t, err := repo.FindByID(ctx, id)
	if err != nil || t.UserID != userID {
		return nil, notFound()
	}
	return t, nil
}
