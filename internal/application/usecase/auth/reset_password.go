package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/personal-ledger/backend/internal/application/adapter"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// ResetPasswordUseCase sets a new password from an emailed reset token and
// signs the account out everywhere.
type ResetPasswordUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	resets    adapter.PasswordResetTokenService
	tokens    adapter.TokenService
}

func NewResetPasswordUseCase(users adapter.UserRepository, passwords adapter.PasswordService, resets adapter.PasswordResetTokenService, tokens adapter.TokenService) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{users: users, passwords: passwords, resets: resets, tokens: tokens}
}

func (uc *ResetPasswordUseCase) Execute(ctx context.Context, input ResetPasswordInput) error {
	// Checked first so a weak password does not burn the token.
	hash, err := hashNewPassword(uc.passwords, input.NewPassword)
	if err != nil {
		return err
	}

	grant, err := uc.resets.Redeem(ctx, input.Token)
	switch {
	case errors.Is(err, domainerror.ErrExpiredToken):
		return domainerror.NewAuthError(domainerror.ErrCodeExpiredResetToken, "password reset token has expired", domainerror.ErrInvalidResetToken)
	case errors.Is(err, domainerror.ErrInvalidResetToken):
		return domainerror.NewAuthError(domainerror.ErrCodeInvalidResetToken, "invalid password reset token", err)
	case err != nil:
		return fmt.Errorf("failed to redeem reset token: %w", err)
	}

	user, err := uc.users.FindByID(ctx, grant.UserID)
	if err != nil {
		return domainerror.NewAuthError(domainerror.ErrCodeInvalidResetToken, "invalid password reset token", err)
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()
	if err := uc.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}

	if err := uc.tokens.RevokeAll(ctx, user.ID); err != nil {
		slog.Error("Failed to revoke sessions after password reset", "userID", user.ID, "error", err)
	}
	return nil
}
