// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction represents the money flow of a transaction.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// IsValid reports whether the direction is one of the known values.
func (d Direction) IsValid() bool {
	return d == DirectionCredit || d == DirectionDebit
}

// Origin identifies how a transaction entered the ledger.
type Origin string

const (
	OriginManual Origin = "manual"
	OriginGPay   Origin = "gpay"
	OriginImport Origin = "import"
)

// DescriptionKeyLength is the number of characters of a raw message kept as the
// transaction description, and therefore part of the duplicate-check key.
const DescriptionKeyLength = 100

// Transaction represents a ledger entry owned by exactly one user.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Name        string
	Amount      decimal.Decimal // Always positive; Direction carries the sign
	Direction   Direction
	Description string
	Origin      Origin
	Category    string // Empty means uncategorized
	BankName    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	date time.Time,
	name string,
	amount decimal.Decimal,
	direction Direction,
	description string,
	origin Origin,
	category string,
	bankName string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		Name:        name,
		Amount:      amount,
		Direction:   direction,
		Description: description,
		Origin:      origin,
		Category:    category,
		BankName:    bankName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// DuplicateKey returns the identity used to detect a re-delivered event.
func (t *Transaction) DuplicateKey() DuplicateKey {
	return DuplicateKey{
		UserID:      t.UserID,
		Amount:      t.Amount,
		Date:        t.Date,
		BankName:    t.BankName,
		Description: TruncateDescription(t.Description),
	}
}

// DuplicateKey is the (owner, amount, date, bank, truncated description) tuple
// two transactions must share to be treated as the same event.
type DuplicateKey struct {
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	BankName    string
	Description string
}

// String renders the key in a stable form, suitable as a lock name.
func (k DuplicateKey) String() string {
	return k.UserID.String() + "|" + k.Amount.String() + "|" + k.Date.Format("2006-01-02") + "|" + k.BankName + "|" + k.Description
}

// TruncateDescription cuts s to DescriptionKeyLength characters.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= DescriptionKeyLength {
		return s
	}
	return string(runes[:DescriptionKeyLength])
}

// TransactionFilter narrows a ledger scan. Zero values mean "no constraint".
type TransactionFilter struct {
	Name      string
	Direction *Direction
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	BankName  string
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionTotals represents aggregated totals for a set of transactions.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}
