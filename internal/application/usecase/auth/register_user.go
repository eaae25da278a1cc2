package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// CategorySeeder gives a freshly registered user their starting categories.
type CategorySeeder interface {
	Execute(ctx context.Context, userID uuid.UUID) error
}

type RegisterUserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// RegisterUserUseCase opens an account and signs the new user in.
type RegisterUserUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	tokens    adapter.TokenService
	seeder    CategorySeeder
}

// NewRegisterUserUseCase wires registration. seeder may be nil to start users
// without default categories.
func NewRegisterUserUseCase(users adapter.UserRepository, passwords adapter.PasswordService, tokens adapter.TokenService, seeder CategorySeeder) *RegisterUserUseCase {
	return &RegisterUserUseCase{users: users, passwords: passwords, tokens: tokens, seeder: seeder}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*Session, error) {
	username := strings.TrimSpace(input.Username)
	email := normalizeEmail(input.Email)

	if !usernamePattern.MatchString(username) {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeMissingFields,
			"username must be 3-50 letters, digits, '.', '_' or '-'", nil)
	}
	if err := checkEmail(email); err != nil {
		return nil, err
	}
	hash, err := hashNewPassword(uc.passwords, input.Password)
	if err != nil {
		return nil, err
	}

	if err := uc.ensureAvailable(ctx, username, email); err != nil {
		return nil, err
	}

	user := entity.NewUser(username, email, strings.TrimSpace(input.FirstName), strings.TrimSpace(input.LastName), hash)
	if err := uc.users.Create(ctx, user); err != nil {
		if conflict := takenError(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	slog.Info("User registered", "userID", user.ID, "username", user.Username)

	if uc.seeder != nil {
		if err := uc.seeder.Execute(ctx, user.ID); err != nil {
			// the account is usable without them
			slog.Error("Failed to seed default categories", "userID", user.ID, "error", err)
		}
	}

	pair, err := uc.tokens.Issue(ctx, user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return newSession(pair, user), nil
}

func (uc *RegisterUserUseCase) ensureAvailable(ctx context.Context, username, email string) error {
	taken, err := uc.users.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return takenError(domainerror.ErrUsernameAlreadyExists)
	}

	taken, err = uc.users.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return takenError(domainerror.ErrEmailAlreadyExists)
	}
	return nil
}

// takenError maps a uniqueness failure to its API error, or returns nil.
func takenError(err error) error {
	switch {
	case errors.Is(err, domainerror.ErrUsernameAlreadyExists):
		return domainerror.NewAuthError(domainerror.ErrCodeUsernameExists, "username already exists", err)
	case errors.Is(err, domainerror.ErrEmailAlreadyExists):
		return domainerror.NewAuthError(domainerror.ErrCodeEmailExists, "email already exists", err)
	}
	return nil
}
