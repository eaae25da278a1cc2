package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// Summarize totals the transactions dated inside the window, bounds included.
// Transactions of other banks are ignored. The summary dates are the window's
// calendar dates, which together with user, bank and period form its replacement key.
func Summarize(
	userID uuid.UUID,
	bankName string,
	window entity.Window,
	transactions []*entity.Transaction,
	generatedAt time.Time,
) *entity.AnalyticsSummary {
	income := decimal.Zero
	expense := decimal.Zero

	for _, t := range transactions {
		if t.BankName != bankName || !window.Contains(t.Date) {
			continue
		}
		switch t.Direction {
		case entity.DirectionCredit:
			income = income.Add(t.Amount)
		case entity.DirectionDebit:
			expense = expense.Add(t.Amount)
		}
	}

	net := income.Sub(expense)

	return &entity.AnalyticsSummary{
		ID:           uuid.New(),
		UserID:       userID,
		BankName:     bankName,
		Period:       window.Period,
		StartDate:    truncateToDate(window.Start),
		EndDate:      truncateToDate(window.End),
		TotalIncome:  income,
		TotalExpense: expense,
		NetBalance:   net,
		Status:       entity.StatusFor(net),
		GeneratedAt:  generatedAt,
	}
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
