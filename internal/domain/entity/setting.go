package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Setting is a per-bank threshold row. A row carries either balance fields or a
// single category limit; several rows coexist per (user, bank).
type Setting struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	BankName      string
	MinBalance    *decimal.Decimal
	ActualBalance *decimal.Decimal
	Category      string
	Limit         *decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewSetting creates an empty setting row for the given bank.
func NewSetting(userID uuid.UUID, bankName string) *Setting {
	now := time.Now().UTC()
	return &Setting{
		ID:        uuid.New(),
		UserID:    userID,
		BankName:  bankName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasCategoryLimit reports whether the row is a category limit row.
func (s *Setting) HasCategoryLimit() bool {
	return s.Category != "" && s.Limit != nil
}

// BankBalanceView is the grouped settings view for one bank.
type BankBalanceView struct {
	BankName          string
	MinBalance        *Setting
	ActualBalance     decimal.Decimal
	CalculatedBalance decimal.Decimal
	TotalBalance      decimal.Decimal
	CategoryLimits    []*Setting
}
