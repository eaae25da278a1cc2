package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePasswordUseCase replaces the password of a signed-in user and revokes
// every refresh token they hold.
type ChangePasswordUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	tokens    adapter.TokenService
}

func NewChangePasswordUseCase(users adapter.UserRepository, passwords adapter.PasswordService, tokens adapter.TokenService) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{users: users, passwords: passwords, tokens: tokens}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, input ChangePasswordInput) error {
	user, err := uc.users.FindByID(ctx, input.UserID)
	if err != nil {
		return domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", err)
	}
	if err := uc.passwords.VerifyPassword(user.PasswordHash, input.CurrentPassword); err != nil {
		return domainerror.NewAuthError(domainerror.ErrCodeWrongPassword, "current password is incorrect", domainerror.ErrInvalidCredentials)
	}

	hash, err := hashNewPassword(uc.passwords, input.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()
	if err := uc.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}

	if err := uc.tokens.RevokeAll(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}
