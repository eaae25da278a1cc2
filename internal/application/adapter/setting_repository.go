package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// UpsertSettingsInput carries the values to merge into a bank's settings.
// Nil fields are left untouched.
type UpsertSettingsInput struct {
	UserID        uuid.UUID
	BankName      string
	MinBalance    *decimal.Decimal
	ActualBalance *decimal.Decimal
	Category      string
	Limit         *decimal.Decimal
}

// SettingRepository defines the interface for settings persistence operations.
type SettingRepository interface {
	// Upsert finds or creates the min balance row, the actual balance row and the
	// category limit row named by the input, in one database transaction.
	Upsert(ctx context.Context, input UpsertSettingsInput) ([]*entity.Setting, error)

	// FindByID retrieves a setting row by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Setting, error)

	// FindByUserAndBank retrieves all setting rows for one bank in creation order.
	FindByUserAndBank(ctx context.Context, userID uuid.UUID, bankName string) ([]*entity.Setting, error)

	// FindCategoryLimits retrieves all category limit rows of a user.
	FindCategoryLimits(ctx context.Context, userID uuid.UUID) ([]*entity.Setting, error)

	// Update updates an existing setting row.
	Update(ctx context.Context, setting *entity.Setting) error

	// Delete removes a setting row.
	Delete(ctx context.Context, id uuid.UUID) error
}
