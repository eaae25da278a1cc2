package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID uuid.UUID
	Filter entity.TransactionFilter
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
	Totals       *entity.TransactionTotals
}

// ListTransactionsUseCase handles filtered ledger scans.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionRepo: transactionRepo}
}

// Execute performs the listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	f := input.Filter
	if f.Direction != nil && !f.Direction.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDirection,
			"txn_type must be 'credit' or 'debit'",
			domainerror.ErrInvalidDirection,
		)
	}
	if f.MinAmount != nil && f.MaxAmount != nil && f.MinAmount.GreaterThan(*f.MaxAmount) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionFilter,
			"min_amount must not exceed max_amount",
			nil,
		)
	}
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionFilter,
			"start_date must not be after end_date",
			nil,
		)
	}

	transactions, err := uc.transactionRepo.FindByFilter(ctx, input.UserID, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	totals, err := uc.transactionRepo.GetTotals(ctx, input.UserID, f)
	if err != nil {
		return nil, fmt.Errorf("failed to compute totals: %w", err)
	}

	return &ListTransactionsOutput{Transactions: transactions, Totals: totals}, nil
}

// GetTransactionInput represents the input for fetching one transaction.
type GetTransactionInput struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

// GetTransactionUseCase fetches one owned transaction.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepo adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{transactionRepo: transactionRepo}
}

// Execute performs the lookup.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, input GetTransactionInput) (*entity.Transaction, error) {
	return findOwned(ctx, uc.transactionRepo, input.ID, input.UserID)
}
