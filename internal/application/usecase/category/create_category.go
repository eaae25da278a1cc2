package category

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// CreateCategoryInput carries a new category. Keywords is comma separated.
type CreateCategoryInput struct {
	UserID   uuid.UUID
	Name     string
	Keywords string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase adds a user-defined category.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute validates the name, checks it is unused and stores the category.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := ensureNameFree(ctx, uc.categoryRepo, name, input.UserID); err != nil {
		return nil, err
	}

	category := entity.NewCategory(input.UserID, name, input.Keywords, false)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, persisted("create", err)
	}
	return &CreateCategoryOutput{Category: category}, nil
}
