package category

import (
	"testing"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

func TestAutoTag(t *testing.T) {
	userID := uuid.New()
	categories := []*entity.Category{
		entity.NewCategory(userID, "groceries", "d mart,big bazaar,supermarket", true),
		entity.NewCategory(userID, "food", "zomato, Swiggy ,restaurant", true),
		entity.NewCategory(userID, "salary", "salary,credited", true),
	}

	tests := []struct {
		name        string
		description string
		categories  []*entity.Category
		expected    string
	}{
		{
			name:        "keyword contained in the description",
			description: "UPI payment to SWIGGY BANGALORE",
			categories:  categories,
			expected:    "food",
		},
		{
			name:        "multi word keyword",
			description: "POS D MART ANDHERI",
			categories:  categories,
			expected:    "groceries",
		},
		{
			name:        "first category in order wins",
			description: "salary credited, dinner at restaurant",
			categories:  categories,
			expected:    "food",
		},
		{
			name:        "no keyword matches",
			description: "ATM withdrawal",
			categories:  categories,
			expected:    entity.UncategorizedCategory,
		},
		{
			name:        "no categories",
			description: "anything",
			categories:  nil,
			expected:    entity.UncategorizedCategory,
		},
		{
			name:        "blank keywords never match",
			description: "anything",
			categories:  []*entity.Category{{Name: "broken", Keywords: []string{" ", ""}}},
			expected:    entity.UncategorizedCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AutoTag(tt.description, tt.categories)
			if got != tt.expected {
				t.Errorf("expected category %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestStoredTag(t *testing.T) {
	categories := []*entity.Category{{Name: "food", Keywords: []string{"swiggy"}}}

	// A match is stored under its category name
	t.Run("match", func(t *testing.T) {
		if got := StoredTag("SWIGGY order", categories); got != "food" {
			t.Errorf("expected category food, got %q", got)
		}
	})

	// No match is stored as an empty category, never the sentinel
	t.Run("no match", func(t *testing.T) {
		if got := StoredTag("ATM withdrawal", categories); got != "" {
			t.Errorf("expected empty category, got %q", got)
		}
	})
}
