package entity

import (
	"time"

	"github.com/google/uuid"
)

// UnknownBank is returned when no alias, pattern or prefix matches.
const UnknownBank = "Unknown"

// BankAlias maps a sender or body fragment to a canonical bank name.
type BankAlias struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Alias     string
	BankName  string
	CreatedAt time.Time
}

// NewBankAlias creates a new BankAlias entity.
func NewBankAlias(userID uuid.UUID, alias, bankName string) *BankAlias {
	return &BankAlias{
		ID:        uuid.New(),
		UserID:    userID,
		Alias:     alias,
		BankName:  bankName,
		CreatedAt: time.Now().UTC(),
	}
}
