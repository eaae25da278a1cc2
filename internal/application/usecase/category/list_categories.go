package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	UserID uuid.UUID
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*entity.CategoryWithLimit
}

// ListCategoriesUseCase lists a user's categories together with their spending limits.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
	settingRepo  adapter.SettingRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository, settingRepo adapter.SettingRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
		settingRepo:  settingRepo,
	}
}

// Execute performs the listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	limits, err := uc.limitsByCategory(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	result := make([]*entity.CategoryWithLimit, 0, len(categories))
	for _, c := range categories {
		result = append(result, &entity.CategoryWithLimit{
			Category: c,
			Limit:    limits[c.Name],
		})
	}

	return &ListCategoriesOutput{Categories: result}, nil
}

// limitsByCategory keeps the first limit configured per category, across banks.
func (uc *ListCategoriesUseCase) limitsByCategory(ctx context.Context, userID uuid.UUID) (map[string]*decimal.Decimal, error) {
	settings, err := uc.settingRepo.FindCategoryLimits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category limits: %w", err)
	}

	limits := make(map[string]*decimal.Decimal, len(settings))
	for _, s := range settings {
		if _, seen := limits[s.Category]; !seen {
			limits[s.Category] = s.Limit
		}
	}
	return limits, nil
}

// GetCategoryInput represents the input for fetching one category by name.
type GetCategoryInput struct {
	UserID uuid.UUID
	Name   string
}

// GetCategoryUseCase fetches one category by name together with its limit.
type GetCategoryUseCase struct {
	list *ListCategoriesUseCase
}

// NewGetCategoryUseCase creates a new GetCategoryUseCase instance.
func NewGetCategoryUseCase(categoryRepo adapter.CategoryRepository, settingRepo adapter.SettingRepository) *GetCategoryUseCase {
	return &GetCategoryUseCase{list: NewListCategoriesUseCase(categoryRepo, settingRepo)}
}

// Execute performs the lookup.
func (uc *GetCategoryUseCase) Execute(ctx context.Context, input GetCategoryInput) (*entity.CategoryWithLimit, error) {
	category, err := uc.list.categoryRepo.FindByNameAndUser(ctx, input.Name, input.UserID)
	if errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	limits, err := uc.list.limitsByCategory(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &entity.CategoryWithLimit{Category: category, Limit: limits[category.Name]}, nil
}
