// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UncategorizedCategory is returned by the auto-tagger when no keyword matches.
const UncategorizedCategory = "uncategorized"

// OthersCategory is the spending bucket for debits without a category.
const OthersCategory = "Others"

// Category represents a user-owned transaction category with its tagging keywords.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Keywords  []string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity from a comma-separated keyword list.
func NewCategory(userID uuid.UUID, name, keywords string, isDefault bool) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Keywords:  SplitKeywords(keywords),
		IsDefault: isDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// KeywordList joins the keywords back into their comma-separated form.
func (c *Category) KeywordList() string {
	return strings.Join(c.Keywords, ",")
}

// SplitKeywords splits a comma-separated list, trimming blanks and dropping empties.
func SplitKeywords(keywords string) []string {
	parts := strings.Split(keywords, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// DefaultCategory describes a category seeded for every new user.
type DefaultCategory struct {
	Name     string
	Keywords string
}

// DefaultCategories returns the categories seeded at registration, in tagging order.
func DefaultCategories() []DefaultCategory {
	return []DefaultCategory{
		{Name: "groceries", Keywords: "d mart,big bazaar,supermarket"},
		{Name: "food", Keywords: "zomato,swiggy,restaurant"},
		{Name: "salary", Keywords: "salary,credited,income"},
		{Name: "rent", Keywords: "rent,landlord"},
	}
}

// CategoryWithLimit pairs a category with the spending limit configured for it, if any.
type CategoryWithLimit struct {
	Category *Category
	Limit    *decimal.Decimal
}
