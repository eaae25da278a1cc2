package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPair is what a client receives after login, registration or rotation.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims identifies the caller behind an access token.
type TokenClaims struct {
	UserID    uuid.UUID
	Username  string
	ExpiresAt time.Time
}

// TokenService issues and checks session tokens. Access tokens are stateless;
// refresh tokens are tracked so they can be rotated and revoked.
type TokenService interface {
	Issue(ctx context.Context, userID uuid.UUID, username string) (*TokenPair, error)

	// ParseAccess fails for anything but a live access token signed by us.
	ParseAccess(ctx context.Context, token string) (*TokenClaims, error)

	// Rotate trades a live refresh token for a new pair. The old refresh
	// token is spent even if issuing the new pair fails.
	Rotate(ctx context.Context, refreshToken string) (*TokenPair, error)

	Revoke(ctx context.Context, refreshToken string) error
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

// PasswordResetToken is a one-time grant to set a new password.
type PasswordResetToken struct {
	Token     string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

type PasswordResetTokenService interface {
	Issue(ctx context.Context, userID uuid.UUID, email string) (*PasswordResetToken, error)

	// Redeem checks the token and spends it. Unknown or already used tokens
	// yield domain ErrInvalidResetToken, stale ones ErrExpiredToken.
	Redeem(ctx context.Context, token string) (*PasswordResetToken, error)
}
