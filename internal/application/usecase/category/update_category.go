package category

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// UpdateCategoryInput represents the input for category update.
// Nil fields are left unchanged.
type UpdateCategoryInput struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     *string
	Keywords *string
}

// UpdateCategoryUseCase handles category updates.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*entity.Category, error) {
	category, err := findOwned(ctx, uc.categoryRepo, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		if name != category.Name {
			if err := ensureNameFree(ctx, uc.categoryRepo, name, input.UserID); err != nil {
				return nil, err
			}
		}
		category.Name = name
	}

	if input.Keywords != nil {
		category.Keywords = entity.SplitKeywords(*input.Keywords)
	}

	category.UpdatedAt = time.Now().UTC()
	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, persisted("update", err)
	}

	return category, nil
}
