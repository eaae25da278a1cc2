package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

type memoryTransactions struct {
	adapter.TransactionRepository
	created []*entity.Transaction
}

func (m *memoryTransactions) Create(_ context.Context, t *entity.Transaction) error {
	m.created = append(m.created, t)
	return nil
}

type stubCategories struct {
	adapter.CategoryRepository
	categories []*entity.Category
	err        error
}

func (s *stubCategories) FindByUser(context.Context, uuid.UUID) ([]*entity.Category, error) {
	return s.categories, s.err
}

func TestCreateTransaction_Category(t *testing.T) {
	userID := uuid.New()
	food := []*entity.Category{entity.NewCategory(userID, "food", "swiggy, zomato", true)}

	tests := []struct {
		name        string
		category    string
		description string
		categories  *stubCategories
		expected    string
	}{
		{
			name:        "explicit category kept",
			category:    "travel",
			description: "swiggy order",
			categories:  &stubCategories{categories: food},
			expected:    "travel",
		},
		{
			name:        "auto-tagged from keywords",
			description: "Swiggy order 42",
			categories:  &stubCategories{categories: food},
			expected:    "food",
		},
		{
			name:        "no match stays empty",
			description: "ATM withdrawal",
			categories:  &stubCategories{categories: food},
			expected:    "",
		},
		{
			name:        "lookup failure stays empty",
			description: "swiggy order",
			categories:  &stubCategories{err: errors.New("db down")},
			expected:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryTransactions{}
			uc := NewCreateTransactionUseCase(repo, tt.categories)

			got, err := uc.Execute(context.Background(), CreateTransactionInput{
				UserID:      userID,
				Date:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				Name:        "Lunch",
				Amount:      decimal.RequireFromString("250.00"),
				Direction:   entity.DirectionDebit,
				Description: tt.description,
				Category:    tt.category,
				BankName:    "HDFC",
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got.Category != tt.expected {
				t.Errorf("expected category %q, got %q", tt.expected, got.Category)
			}
			if got.Origin != entity.OriginManual {
				t.Errorf("expected origin %s, got %s", entity.OriginManual, got.Origin)
			}
		})
	}
}
