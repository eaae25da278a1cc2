// Package bankalias contains use cases for user-defined bank aliases.
package bankalias

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// AddAliasInput represents the input for adding an alias.
type AddAliasInput struct {
	UserID   uuid.UUID
	Alias    string
	BankName string
}

// AddAliasUseCase stores a new alias.
type AddAliasUseCase struct {
	aliasRepo adapter.BankAliasRepository
}

// NewAddAliasUseCase creates a new AddAliasUseCase instance.
func NewAddAliasUseCase(aliasRepo adapter.BankAliasRepository) *AddAliasUseCase {
	return &AddAliasUseCase{aliasRepo: aliasRepo}
}

// Execute performs the insertion.
func (uc *AddAliasUseCase) Execute(ctx context.Context, input AddAliasInput) (*entity.BankAlias, error) {
	alias := strings.TrimSpace(input.Alias)
	bank := strings.TrimSpace(input.BankName)
	if alias == "" || bank == "" {
		return nil, domainerror.NewBankAliasError(
			domainerror.ErrCodeMissingAliasFields,
			"alias and bank_name are required",
			nil,
		)
	}

	exists, err := uc.aliasRepo.ExistsByAlias(ctx, input.UserID, alias)
	if err != nil {
		return nil, fmt.Errorf("failed to check alias: %w", err)
	}
	if exists {
		return nil, domainerror.NewBankAliasError(
			domainerror.ErrCodeAliasExists,
			"Alias already exists",
			domainerror.ErrAliasExists,
		)
	}

	a := entity.NewBankAlias(input.UserID, alias, bank)
	if err := uc.aliasRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create alias: %w", err)
	}
	return a, nil
}

// ListAliasesUseCase returns a user's aliases in the order they are consulted.
type ListAliasesUseCase struct {
	aliasRepo adapter.BankAliasRepository
}

// NewListAliasesUseCase creates a new ListAliasesUseCase instance.
func NewListAliasesUseCase(aliasRepo adapter.BankAliasRepository) *ListAliasesUseCase {
	return &ListAliasesUseCase{aliasRepo: aliasRepo}
}

// Execute performs the listing.
func (uc *ListAliasesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.BankAlias, error) {
	aliases, err := uc.aliasRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list aliases: %w", err)
	}
	return aliases, nil
}

// DeleteAliasInput represents the input for deleting an alias.
type DeleteAliasInput struct {
	UserID uuid.UUID
	Alias  string
}

// DeleteAliasUseCase removes an alias by its text.
type DeleteAliasUseCase struct {
	aliasRepo adapter.BankAliasRepository
}

// NewDeleteAliasUseCase creates a new DeleteAliasUseCase instance.
func NewDeleteAliasUseCase(aliasRepo adapter.BankAliasRepository) *DeleteAliasUseCase {
	return &DeleteAliasUseCase{aliasRepo: aliasRepo}
}

// Execute performs the deletion.
func (uc *DeleteAliasUseCase) Execute(ctx context.Context, input DeleteAliasInput) error {
	deleted, err := uc.aliasRepo.DeleteByAlias(ctx, input.UserID, input.Alias)
	if err != nil {
		return fmt.Errorf("failed to delete alias: %w", err)
	}
	if !deleted {
		return domainerror.NewBankAliasError(
			domainerror.ErrCodeAliasNotFound,
			"Alias not found",
			domainerror.ErrAliasNotFound,
		)
	}
	return nil
}
