package auth

import (
	"context"
	"log/slog"

	"github.com/personal-ledger/backend/internal/application/adapter"
)

type LogoutUserInput struct {
	RefreshToken string
}

type LogoutUserUseCase struct {
	tokens adapter.TokenService
}

func NewLogoutUserUseCase(tokens adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{tokens: tokens}
}

// Execute revokes the refresh token. Revoking an unknown or already revoked
// token is not an error, so logout is idempotent.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) error {
	if input.RefreshToken == "" {
		return nil
	}
	if err := uc.tokens.Revoke(ctx, input.RefreshToken); err != nil {
		slog.Warn("Failed to revoke refresh token on logout", "error", err)
		return err
	}
	return nil
}
