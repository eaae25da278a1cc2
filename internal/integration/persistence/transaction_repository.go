// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	return r.db.WithContext(ctx).Create(transactionModel).Error
}

// CreateIfAbsent inserts the transaction unless its duplicate key already exists.
func (r *transactionRepository) CreateIfAbsent(ctx context.Context, transaction *entity.Transaction) (*entity.Transaction, bool, error) {
	key := transaction.DuplicateKey()
	var existing *entity.Transaction

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var found model.TransactionModel
		result := tx.
			Where("user_id = ? AND amount = ? AND date = ? AND bank_name = ? AND description_key = ?",
				key.UserID, key.Amount, key.Date, key.BankName, key.Description).
			Limit(1).
			Find(&found)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			existing = found.ToEntity()
			return nil
		}
		return tx.Create(model.TransactionFromEntity(transaction)).Error
	})
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	return transaction, true, nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByFilter retrieves a user's transactions matching the filter, newest first.
func (r *transactionRepository) FindByFilter(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.filtered(ctx, userID, filter).
		Order("date DESC, created_at DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactionEntities(transactionModels), nil
}

// FindByUserAndBank retrieves every transaction of a user for one bank, oldest first.
func (r *transactionRepository) FindByUserAndBank(ctx context.Context, userID uuid.UUID, bankName string) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND bank_name = ?", userID, bankName).
		Order("date ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactionEntities(transactionModels), nil
}

// GetTotals calculates credit and debit totals for transactions matching the filter.
func (r *transactionRepository) GetTotals(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) (*entity.TransactionTotals, error) {
	query := r.filtered(ctx, userID, filter)

	var incomeResult struct {
		Total decimal.Decimal
	}
	if err := query.Session(&gorm.Session{}).
		Where("type = ?", string(entity.DirectionCredit)).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&incomeResult).Error; err != nil {
		return nil, err
	}

	var expenseResult struct {
		Total decimal.Decimal
	}
	if err := query.Session(&gorm.Session{}).
		Where("type = ?", string(entity.DirectionDebit)).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&expenseResult).Error; err != nil {
		return nil, err
	}

	// SQLite sums decimals as floats
	incomeTotal := incomeResult.Total.Round(2)
	expenseTotal := expenseResult.Total.Round(2)

	return &entity.TransactionTotals{
		IncomeTotal:  incomeTotal,
		ExpenseTotal: expenseTotal,
		NetTotal:     incomeTotal.Sub(expenseTotal),
	}, nil
}

// Update updates an existing transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	return r.db.WithContext(ctx).Save(transactionModel).Error
}

// Delete removes a transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

func (r *transactionRepository) filtered(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{}).Where("user_id = ?", userID)

	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Direction != nil {
		query = query.Where("type = ?", string(*filter.Direction))
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}
	if filter.BankName != "" {
		query = query.Where("bank_name = ?", filter.BankName)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	return query
}

func toTransactionEntities(models []model.TransactionModel) []*entity.Transaction {
	transactions := make([]*entity.Transaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions
}
