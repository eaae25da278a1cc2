package auth

import (
	"context"

	"github.com/personal-ledger/backend/internal/application/adapter"
)

type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenUseCase rotates a refresh token. Each refresh token works once.
type RefreshTokenUseCase struct {
	tokens adapter.TokenService
}

func NewRefreshTokenUseCase(tokens adapter.TokenService) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{tokens: tokens}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, input RefreshTokenInput) (*adapter.TokenPair, error) {
	pair, err := uc.tokens.Rotate(ctx, input.RefreshToken)
	if err != nil {
		return nil, tokenFailure(err, "refresh token")
	}
	return pair, nil
}
