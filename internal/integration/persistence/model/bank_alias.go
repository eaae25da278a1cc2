package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// BankAliasModel represents the bank_aliases table in the database.
type BankAliasModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bank_aliases_user_alias"`
	Alias     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_bank_aliases_user_alias"`
	BankName  string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the BankAliasModel.
func (BankAliasModel) TableName() string {
	return "bank_aliases"
}

// ToEntity converts a BankAliasModel to a domain BankAlias entity.
func (m *BankAliasModel) ToEntity() *entity.BankAlias {
	return &entity.BankAlias{
		ID:        m.ID,
		UserID:    m.UserID,
		Alias:     m.Alias,
		BankName:  m.BankName,
		CreatedAt: m.CreatedAt,
	}
}

// BankAliasFromEntity creates a BankAliasModel from a domain BankAlias entity.
func BankAliasFromEntity(a *entity.BankAlias) *BankAliasModel {
	return &BankAliasModel{
		ID:        a.ID,
		UserID:    a.UserID,
		Alias:     a.Alias,
		BankName:  a.BankName,
		CreatedAt: a.CreatedAt,
	}
}
