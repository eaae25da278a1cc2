package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Period is the label of an analytics window.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// IsValid reports whether the period is a known label.
func (p Period) IsValid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// SummaryStatus is derived from the sign of the net balance.
type SummaryStatus string

const (
	StatusProfit SummaryStatus = "profit"
	StatusLoss   SummaryStatus = "loss"
)

// Window is an inclusive [Start, End] range.
type Window struct {
	Period Period
	Start  time.Time
	End    time.Time
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// AnalyticsSummary is a point-in-time income/expense snapshot for one window.
type AnalyticsSummary struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	BankName     string
	Period       Period
	StartDate    time.Time
	EndDate      time.Time
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetBalance   decimal.Decimal
	Status       SummaryStatus
	GeneratedAt  time.Time
}

// StatusFor derives the summary status from a net balance. Zero counts as profit.
func StatusFor(net decimal.Decimal) SummaryStatus {
	if net.IsNegative() {
		return StatusLoss
	}
	return StatusProfit
}
