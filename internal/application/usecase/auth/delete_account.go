package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// deleteConfirmation is the word a client may send to confirm deletion.
const deleteConfirmation = "DELETE"

type DeleteAccountInput struct {
	UserID   uuid.UUID
	Password string
	// Confirmation is optional; when present it must be "DELETE".
	Confirmation string
}

// DeleteAccountUseCase removes a user and everything they own.
type DeleteAccountUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	tokens    adapter.TokenService
}

func NewDeleteAccountUseCase(users adapter.UserRepository, passwords adapter.PasswordService, tokens adapter.TokenService) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{users: users, passwords: passwords, tokens: tokens}
}

func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	if input.Confirmation != "" && input.Confirmation != deleteConfirmation {
		return domainerror.NewAuthError(domainerror.ErrCodeInvalidConfirmation, "confirmation must be exactly 'DELETE'", nil)
	}

	user, err := uc.users.FindByID(ctx, input.UserID)
	if err != nil {
		return domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", err)
	}
	if err := uc.passwords.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return domainerror.NewAuthError(domainerror.ErrCodeInvalidCredentials, "invalid password", domainerror.ErrInvalidCredentials)
	}

	if err := uc.tokens.RevokeAll(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	// cascades to transactions, categories, settings, summaries and aliases
	if err := uc.users.DeleteWithData(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	slog.Info("Account deleted", "userID", user.ID)
	return nil
}
