package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStandardWindows(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 30, 0, 0, time.UTC)
	windows := StandardWindows(now)

	tests := []struct {
		period        entity.Period
		expectedStart time.Time
	}{
		{entity.PeriodDaily, day(2025, 3, 15)},
		{entity.PeriodWeekly, time.Date(2025, 3, 8, 12, 30, 0, 0, time.UTC)},
		{entity.PeriodMonthly, time.Date(2025, 2, 13, 12, 30, 0, 0, time.UTC)},
		{entity.PeriodYearly, time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)},
	}

	if len(windows) != len(tests) {
		t.Fatalf("expected %d windows, got %d", len(tests), len(windows))
	}

	for i, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			w := windows[i]
			if w.Period != tt.period {
				t.Errorf("expected period %s, got %s", tt.period, w.Period)
			}
			if !w.Start.Equal(tt.expectedStart) {
				t.Errorf("expected start %s, got %s", tt.expectedStart, w.Start)
			}
			if !w.End.Equal(now) {
				t.Errorf("expected end %s, got %s", now, w.End)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	weekly := StandardWindows(now)[1]

	newTxn := func(date time.Time, amount string, direction entity.Direction, bank string) *entity.Transaction {
		return entity.NewTransaction(userID, date, "t", decimal.RequireFromString(amount), direction, "", entity.OriginManual, "", bank)
	}

	// Test totals include only the bank's transactions inside the window.
	t.Run("totals respect window and bank", func(t *testing.T) {
		summary := Summarize(userID, "HDFC", weekly, []*entity.Transaction{
			newTxn(day(2025, 3, 10), "1000", entity.DirectionCredit, "HDFC"),
			newTxn(day(2025, 3, 12), "250", entity.DirectionDebit, "HDFC"),
			newTxn(day(2025, 3, 1), "999", entity.DirectionDebit, "HDFC"),
			newTxn(day(2025, 3, 12), "50", entity.DirectionDebit, "SBI"),
		}, now)

		if !summary.TotalIncome.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected income 1000, got %s", summary.TotalIncome)
		}
		if !summary.TotalExpense.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected expense 250, got %s", summary.TotalExpense)
		}
		if !summary.NetBalance.Equal(decimal.NewFromInt(750)) {
			t.Errorf("expected net 750, got %s", summary.NetBalance)
		}
		if summary.Status != entity.StatusProfit {
			t.Errorf("expected status %s, got %s", entity.StatusProfit, summary.Status)
		}
	})

	// Test the window bounds are inclusive.
	t.Run("bounds are inclusive", func(t *testing.T) {
		w := entity.Window{Period: entity.PeriodDaily, Start: day(2025, 3, 15), End: day(2025, 3, 15)}
		summary := Summarize(userID, "HDFC", w, []*entity.Transaction{
			newTxn(day(2025, 3, 15), "10", entity.DirectionDebit, "HDFC"),
		}, now)

		if !summary.TotalExpense.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected expense 10, got %s", summary.TotalExpense)
		}
		if summary.Status != entity.StatusLoss {
			t.Errorf("expected status %s, got %s", entity.StatusLoss, summary.Status)
		}
	})

	// Test an empty window is a zero profit.
	t.Run("empty window is zero profit", func(t *testing.T) {
		summary := Summarize(userID, "HDFC", weekly, nil, now)

		if !summary.NetBalance.IsZero() {
			t.Errorf("expected zero net, got %s", summary.NetBalance)
		}
		if summary.Status != entity.StatusProfit {
			t.Errorf("expected status %s, got %s", entity.StatusProfit, summary.Status)
		}
	})

	// Test summary dates are calendar dates of the window.
	t.Run("dates are truncated to calendar days", func(t *testing.T) {
		summary := Summarize(userID, "HDFC", weekly, nil, now)

		if !summary.StartDate.Equal(day(2025, 3, 8)) {
			t.Errorf("expected start date 2025-03-08, got %s", summary.StartDate)
		}
		if !summary.EndDate.Equal(day(2025, 3, 15)) {
			t.Errorf("expected end date 2025-03-15, got %s", summary.EndDate)
		}
		if !summary.GeneratedAt.Equal(now) {
			t.Errorf("expected generated at %s, got %s", now, summary.GeneratedAt)
		}
	})
}
