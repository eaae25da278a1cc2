package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

type LoginUserInput struct {
	// Identifier is a username, or an email when it contains '@'.
	Identifier string
	Password   string
}

type LoginUserUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	tokens    adapter.TokenService
}

func NewLoginUserUseCase(users adapter.UserRepository, passwords adapter.PasswordService, tokens adapter.TokenService) *LoginUserUseCase {
	return &LoginUserUseCase{users: users, passwords: passwords, tokens: tokens}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*Session, error) {
	user, err := uc.lookup(ctx, strings.TrimSpace(input.Identifier))
	if err != nil {
		return nil, badLogin()
	}
	if err := uc.passwords.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, badLogin()
	}

	pair, err := uc.tokens.Issue(ctx, user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return newSession(pair, user), nil
}

func (uc *LoginUserUseCase) lookup(ctx context.Context, identifier string) (*entity.User, error) {
	if strings.Contains(identifier, "@") {
		return uc.users.FindByEmail(ctx, normalizeEmail(identifier))
	}
	return uc.users.FindByUsername(ctx, identifier)
}
