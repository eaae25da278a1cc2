package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// SettingModel represents the settings table in the database.
type SettingModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index:idx_settings_user_bank,priority:1"`
	BankName      string           `gorm:"type:varchar(100);not null;index:idx_settings_user_bank,priority:2"`
	MinBalance    *decimal.Decimal `gorm:"type:decimal(15,2)"`
	ActualBalance *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Category      string           `gorm:"type:varchar(50)"`
	Limit         *decimal.Decimal `gorm:"column:limit_amount;type:decimal(15,2)"`
	CreatedAt     time.Time        `gorm:"not null"`
	UpdatedAt     time.Time        `gorm:"not null"`
}

// TableName returns the table name for the SettingModel.
func (SettingModel) TableName() string {
	return "settings"
}

// ToEntity converts a SettingModel to a domain Setting entity.
func (m *SettingModel) ToEntity() *entity.Setting {
	return &entity.Setting{
		ID:            m.ID,
		UserID:        m.UserID,
		BankName:      m.BankName,
		MinBalance:    m.MinBalance,
		ActualBalance: m.ActualBalance,
		Category:      m.Category,
		Limit:         m.Limit,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// SettingFromEntity creates a SettingModel from a domain Setting entity.
func SettingFromEntity(s *entity.Setting) *SettingModel {
	return &SettingModel{
		ID:            s.ID,
		UserID:        s.UserID,
		BankName:      s.BankName,
		MinBalance:    s.MinBalance,
		ActualBalance: s.ActualBalance,
		Category:      s.Category,
		Limit:         s.Limit,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
