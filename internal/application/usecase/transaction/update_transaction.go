package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// UpdateTransactionInput represents the input for transaction update.
// Nil fields are left unchanged.
type UpdateTransactionInput struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        *time.Time
	Name        *string
	Amount      *decimal.Decimal
	Direction   *entity.Direction
	Description *string
	Origin      *entity.Origin
	Category    *string
	BankName    *string
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(transactionRepo adapter.TransactionRepository) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{transactionRepo: transactionRepo}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*entity.Transaction, error) {
	t, err := findOwned(ctx, uc.transactionRepo, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Date != nil {
		t.Date = *input.Date
	}
	if input.Name != nil {
		t.Name = strings.TrimSpace(*input.Name)
	}
	if input.Amount != nil {
		t.Amount = *input.Amount
	}
	if input.Direction != nil {
		t.Direction = *input.Direction
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Origin != nil {
		t.Origin = *input.Origin
	}
	if input.Category != nil {
		t.Category = strings.TrimSpace(*input.Category)
	}
	if input.BankName != nil {
		t.BankName = strings.TrimSpace(*input.BankName)
	}

	if err := validate(t.Name, t.Amount, t.Direction, t.BankName, t.Date); err != nil {
		return nil, err
	}

	t.UpdatedAt = time.Now().UTC()
	if err := uc.transactionRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return t, nil
}

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

// DeleteTransactionUseCase handles transaction deletion.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(transactionRepo adapter.TransactionRepository) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{transactionRepo: transactionRepo}
}

// Execute performs the deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	t, err := findOwned(ctx, uc.transactionRepo, input.ID, input.UserID)
	if err != nil {
		return err
	}
	if err := uc.transactionRepo.Delete(ctx, t.ID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}
