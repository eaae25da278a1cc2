// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// TransactionRepository defines the interface for ledger persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// CreateIfAbsent inserts the transaction unless one with the same duplicate key
	// exists. The lookup and the insert run in one database transaction.
	// It returns the existing row and false when a duplicate was found.
	CreateIfAbsent(ctx context.Context, transaction *entity.Transaction) (*entity.Transaction, bool, error)

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves a user's transactions matching the filter, newest first.
	FindByFilter(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) ([]*entity.Transaction, error)

	// FindByUserAndBank retrieves every transaction of a user for one bank.
	FindByUserAndBank(ctx context.Context, userID uuid.UUID, bankName string) ([]*entity.Transaction, error)

	// GetTotals calculates credit and debit totals for transactions matching the filter.
	GetTotals(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) (*entity.TransactionTotals, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
