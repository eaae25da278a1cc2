package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// BankAliasRepository defines the interface for bank alias persistence.
type BankAliasRepository interface {
	// Create stores a new alias.
	Create(ctx context.Context, alias *entity.BankAlias) error

	// FindByUser retrieves a user's aliases in creation order.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BankAlias, error)

	// ExistsByAlias checks whether the user already defined the alias text.
	ExistsByAlias(ctx context.Context, userID uuid.UUID, alias string) (bool, error)

	// DeleteByAlias removes the alias with the given text and reports whether a row was deleted.
	DeleteByAlias(ctx context.Context, userID uuid.UUID, alias string) (bool, error)
}
