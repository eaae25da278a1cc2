// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
// DescriptionKey holds the truncated description used by the duplicate check,
// indexed together with the other key columns.
type TransactionModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_dedupe,priority:1;index:idx_transactions_user_bank,priority:1"`
	Date           time.Time       `gorm:"type:date;not null;index:idx_transactions_dedupe,priority:3"`
	Name           string          `gorm:"type:varchar(255)"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null;index:idx_transactions_dedupe,priority:2"`
	Direction      string          `gorm:"column:type;type:varchar(10);not null;index"`
	Description    string          `gorm:"type:text"`
	DescriptionKey string          `gorm:"type:varchar(400);index:idx_transactions_dedupe,priority:5"`
	Origin         string          `gorm:"column:source;type:varchar(20);not null"`
	Category       string          `gorm:"type:varchar(50);index"`
	BankName       string          `gorm:"type:varchar(100);not null;index:idx_transactions_dedupe,priority:4;index:idx_transactions_user_bank,priority:2"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Date:        m.Date,
		Name:        m.Name,
		Amount:      m.Amount,
		Direction:   entity.Direction(m.Direction),
		Description: m.Description,
		Origin:      entity.Origin(m.Origin),
		Category:    m.Category,
		BankName:    m.BankName,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(t *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:             t.ID,
		UserID:         t.UserID,
		Date:           t.Date,
		Name:           t.Name,
		Amount:         t.Amount,
		Direction:      string(t.Direction),
		Description:    t.Description,
		DescriptionKey: entity.TruncateDescription(t.Description),
		Origin:         string(t.Origin),
		Category:       t.Category,
		BankName:       t.BankName,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
