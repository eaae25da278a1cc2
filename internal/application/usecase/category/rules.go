package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

var (
	errNotFound = domainerror.NewCategoryError(domainerror.ErrCodeCategoryNotFound, "Category not found", domainerror.ErrCategoryNotFound)
	errNameUsed = domainerror.NewCategoryError(domainerror.ErrCodeCategoryNameExists, "Category already exists", domainerror.ErrCategoryNameExists)
)

func validateName(name string) error {
	switch {
	case name == "":
		return domainerror.NewCategoryError(domainerror.ErrCodeMissingCategoryFields, "name is required", nil)
	case len(name) > MaxCategoryNameLength:
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}
	return nil
}

// ensureNameFree rejects a name the user already has. The unique index
// still catches a concurrent insert, see persisted.
func ensureNameFree(ctx context.Context, repo adapter.CategoryRepository, name string, userID uuid.UUID) error {
	taken, err := repo.ExistsByNameAndUser(ctx, name, userID)
	if err != nil {
		return fmt.Errorf("failed to check category name uniqueness: %w", err)
	}
	if taken {
		return errNameUsed
	}
	return nil
}

// persisted wraps a repository write error, keeping name conflicts typed.
func persisted(op string, err error) error {
	if errors.Is(err, domainerror.ErrCategoryNameExists) {
		return errNameUsed
	}
	return fmt.Errorf("failed to %s category: %w", op, err)
}

// findOwned loads a category and hides rows owned by someone else behind not-found.
func findOwned(ctx context.Context, repo adapter.CategoryRepository, id, userID uuid.UUID) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, id)
	if errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if category.UserID != userID {
		return nil, errNotFound
	}
	return category, nil
}
