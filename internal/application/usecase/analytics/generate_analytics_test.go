package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

type bankLedger struct {
	adapter.TransactionRepository
	rows []*entity.Transaction
}

func (l *bankLedger) FindByUserAndBank(_ context.Context, userID uuid.UUID, bankName string) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range l.rows {
		if t.UserID == userID && t.BankName == bankName {
			out = append(out, t)
		}
	}
	return out, nil
}

type memorySummaries struct {
	rows []*entity.AnalyticsSummary
}

func (m *memorySummaries) Replace(_ context.Context, s *entity.AnalyticsSummary) error {
	kept := m.rows[:0]
	for _, r := range m.rows {
		same := r.UserID == s.UserID && r.BankName == s.BankName && r.Period == s.Period &&
			r.StartDate.Equal(s.StartDate) && r.EndDate.Equal(s.EndDate)
		if !same {
			kept = append(kept, r)
		}
	}
	m.rows = append(kept, s)
	return nil
}

func (m *memorySummaries) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.AnalyticsSummary, error) {
	var out []*entity.AnalyticsSummary
	for _, r := range m.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memorySummaries) FindByID(_ context.Context, id uuid.UUID) (*entity.AnalyticsSummary, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domainerror.ErrSummaryNotFound
}

func (m *memorySummaries) Delete(_ context.Context, id uuid.UUID) error {
	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrSummaryNotFound
}

func TestGenerateAnalyticsUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	ledger := &bankLedger{rows: []*entity.Transaction{
		entity.NewTransaction(userID, day(2025, 3, 15), "Lunch", decimal.NewFromInt(200), entity.DirectionDebit, "", entity.OriginManual, "food", "HDFC"),
		entity.NewTransaction(userID, day(2025, 3, 10), "Refund", decimal.NewFromInt(1000), entity.DirectionCredit, "", entity.OriginManual, "", "HDFC"),
		entity.NewTransaction(userID, day(2025, 2, 20), "Rent", decimal.NewFromInt(3000), entity.DirectionDebit, "", entity.OriginManual, "rent", "HDFC"),
		entity.NewTransaction(userID, day(2025, 3, 15), "Other bank", decimal.NewFromInt(999), entity.DirectionDebit, "", entity.OriginManual, "", "SBI"),
	}}

	// Test the four periods are generated in order with their totals.
	t.Run("generates four summaries", func(t *testing.T) {
		store := &memorySummaries{}
		uc := NewGenerateAnalyticsUseCase(ledger, store, clock)

		out, err := uc.Execute(ctx, GenerateAnalyticsInput{UserID: userID, BankName: " HDFC "})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		expected := []struct {
			period entity.Period
			net    string
			status entity.SummaryStatus
		}{
			{entity.PeriodDaily, "-200", entity.StatusLoss},
			{entity.PeriodWeekly, "800", entity.StatusProfit},
			{entity.PeriodMonthly, "-2200", entity.StatusLoss},
			{entity.PeriodYearly, "-2200", entity.StatusLoss},
		}
		if len(out.Generated) != len(expected) {
			t.Fatalf("expected %d summaries, got %d", len(expected), len(out.Generated))
		}
		for i, e := range expected {
			got := out.Generated[i]
			if got.Period != e.period {
				t.Errorf("expected period %s at %d, got %s", e.period, i, got.Period)
			}
			if !got.NetBalance.Equal(decimal.RequireFromString(e.net)) {
				t.Errorf("expected %s net %s, got %s", e.period, e.net, got.NetBalance)
			}
			if got.Status != e.status {
				t.Errorf("expected %s status %s, got %s", e.period, e.status, got.Status)
			}
			if got.BankName != "HDFC" || !got.GeneratedAt.Equal(now) {
				t.Errorf("expected HDFC generated at %s, got %s at %s", now, got.BankName, got.GeneratedAt)
			}
		}
		if len(out.History) != 4 {
			t.Errorf("expected history of 4, got %d", len(out.History))
		}
	})

	// Test regenerating the same windows replaces instead of appending.
	t.Run("regeneration replaces", func(t *testing.T) {
		store := &memorySummaries{}
		uc := NewGenerateAnalyticsUseCase(ledger, store, clock)

		if _, err := uc.Execute(ctx, GenerateAnalyticsInput{UserID: userID, BankName: "HDFC"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		out, err := uc.Execute(ctx, GenerateAnalyticsInput{UserID: userID, BankName: "HDFC"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(out.History) != 4 {
			t.Errorf("expected history of 4, got %d", len(out.History))
		}
	})

	// Test a missing bank is rejected before any work.
	t.Run("missing bank", func(t *testing.T) {
		uc := NewGenerateAnalyticsUseCase(ledger, &memorySummaries{}, clock)

		_, err := uc.Execute(ctx, GenerateAnalyticsInput{UserID: userID, BankName: "  "})
		var analyticsErr *domainerror.AnalyticsError
		if !errors.As(err, &analyticsErr) {
			t.Fatalf("expected AnalyticsError, got %v", err)
		}
		if analyticsErr.Code != domainerror.ErrCodeMissingAnalyticsFields {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeMissingAnalyticsFields, analyticsErr.Code)
		}
	})
}

func TestDeleteAnalyticsUseCase(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	summary := &entity.AnalyticsSummary{ID: uuid.New(), UserID: owner, Period: entity.PeriodDaily}

	// Test another user's summary looks missing.
	t.Run("foreign summary", func(t *testing.T) {
		store := &memorySummaries{rows: []*entity.AnalyticsSummary{summary}}
		uc := NewDeleteAnalyticsUseCase(store)

		err := uc.Execute(ctx, DeleteAnalyticsInput{ID: summary.ID, UserID: uuid.New()})
		if !errors.Is(err, domainerror.ErrSummaryNotFound) {
			t.Errorf("expected ErrSummaryNotFound, got %v", err)
		}
		if len(store.rows) != 1 {
			t.Error("expected summary to be kept")
		}
	})

	// Test the owner can delete.
	t.Run("owner deletes", func(t *testing.T) {
		store := &memorySummaries{rows: []*entity.AnalyticsSummary{summary}}
		uc := NewDeleteAnalyticsUseCase(store)

		if err := uc.Execute(ctx, DeleteAnalyticsInput{ID: summary.ID, UserID: owner}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(store.rows) != 0 {
			t.Error("expected summary to be removed")
		}
	})
}
