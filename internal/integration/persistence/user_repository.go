// Package persistence implements the repository adapters on top of GORM.
package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/persistence/model"
)

// ownedByUser lists the tables keyed by user_id, children before parents.
var ownedByUser = []any{
	&model.TransactionModel{},
	&model.CategoryModel{},
	&model.SettingModel{},
	&model.AnalyticsSummaryModel{},
	&model.BankAliasModel{},
	&model.RefreshTokenModel{},
	&model.PasswordResetTokenModel{},
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user. Losing a registration race on the unique
// username or email index is reported like the pre-check would have.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	err := r.db.WithContext(ctx).Create(model.UserFromEntity(user)).Error
	if index, ok := uniqueViolation(err); ok {
		if strings.Contains(index, "email") {
			return domainerror.ErrEmailAlreadyExists
		}
		return domainerror.ErrUsernameAlreadyExists
	}
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *userRepository) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	row, err := first[model.UserModel](ctx, r.db, domainerror.ErrUserNotFound, where, arg)
	if err != nil {
		return nil, err
	}
	return row.ToEntity(), nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(model.UserFromEntity(user)).Error
}

// DeleteWithData removes the user and everything they own atomically.
func (r *userRepository) DeleteWithData(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range ownedByUser {
			if err := tx.Where("user_id = ?", id).Delete(table).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&model.UserModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainerror.ErrUserNotFound
		}
		return nil
	})
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return exists[model.UserModel](ctx, r.db, "email = ?", email)
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return exists[model.UserModel](ctx, r.db, "username = ?", username)
}
