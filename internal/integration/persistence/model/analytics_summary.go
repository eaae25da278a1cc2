package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// AnalyticsSummaryModel represents the analytics table in the database.
// The unique window index is the replacement key.
type AnalyticsSummaryModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_analytics_window,priority:1"`
	BankName     string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_analytics_window,priority:2"`
	Period       string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_analytics_window,priority:3"`
	StartDate    time.Time       `gorm:"type:date;not null;uniqueIndex:idx_analytics_window,priority:4"`
	EndDate      time.Time       `gorm:"type:date;not null;uniqueIndex:idx_analytics_window,priority:5"`
	TotalIncome  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalExpense decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	NetBalance   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status       string          `gorm:"type:varchar(10);not null"`
	GeneratedAt  time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for the AnalyticsSummaryModel.
func (AnalyticsSummaryModel) TableName() string {
	return "analytics"
}

// ToEntity converts an AnalyticsSummaryModel to a domain AnalyticsSummary entity.
func (m *AnalyticsSummaryModel) ToEntity() *entity.AnalyticsSummary {
	return &entity.AnalyticsSummary{
		ID:           m.ID,
		UserID:       m.UserID,
		BankName:     m.BankName,
		Period:       entity.Period(m.Period),
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		TotalIncome:  m.TotalIncome,
		TotalExpense: m.TotalExpense,
		NetBalance:   m.NetBalance,
		Status:       entity.SummaryStatus(m.Status),
		GeneratedAt:  m.GeneratedAt,
	}
}

// AnalyticsSummaryFromEntity creates an AnalyticsSummaryModel from a domain entity.
func AnalyticsSummaryFromEntity(s *entity.AnalyticsSummary) *AnalyticsSummaryModel {
	return &AnalyticsSummaryModel{
		ID:           s.ID,
		UserID:       s.UserID,
		BankName:     s.BankName,
		Period:       string(s.Period),
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		NetBalance:   s.NetBalance,
		Status:       string(s.Status),
		GeneratedAt:  s.GeneratedAt,
	}
}
