package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// SeedDefaultCategoriesUseCase gives a new user the built-in categories.
type SeedDefaultCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewSeedDefaultCategoriesUseCase creates a new SeedDefaultCategoriesUseCase instance.
func NewSeedDefaultCategoriesUseCase(categoryRepo adapter.CategoryRepository) *SeedDefaultCategoriesUseCase {
	return &SeedDefaultCategoriesUseCase{categoryRepo: categoryRepo}
}

// Execute inserts the defaults the user does not already have, preserving their order.
func (uc *SeedDefaultCategoriesUseCase) Execute(ctx context.Context, userID uuid.UUID) error {
	var toCreate []*entity.Category
	base := time.Now().UTC()
	for i, d := range entity.DefaultCategories() {
		exists, err := uc.categoryRepo.ExistsByNameAndUser(ctx, d.Name, userID)
		if err != nil {
			return fmt.Errorf("failed to check default category %q: %w", d.Name, err)
		}
		if !exists {
			c := entity.NewCategory(userID, d.Name, d.Keywords, true)
			// Categories are listed by creation time; spread the stamps so the tagging order survives.
			c.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
			c.UpdatedAt = c.CreatedAt
			toCreate = append(toCreate, c)
		}
	}

	if len(toCreate) == 0 {
		return nil
	}
	if err := uc.categoryRepo.CreateBatch(ctx, toCreate); err != nil {
		return fmt.Errorf("failed to seed default categories: %w", err)
	}
	return nil
}
