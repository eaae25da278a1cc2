// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/persistence"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
	resetTokenTTL     = time.Hour

	tokenIssuer = "personal-ledger"
)

type tokenKind string

const (
	accessKind  tokenKind = "access"
	refreshKind tokenKind = "refresh"
)

// sessionClaims is the JWT body. Subject carries the user id.
type sessionClaims struct {
	Username string    `json:"username"`
	Kind     tokenKind `json:"kind"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	tokens     persistence.TokenRepository
	now        func() time.Time
}

// NewTokenService signs HS256 session tokens with secret. Zero TTLs mean
// 15 minutes and 7 days; a nil clock means the wall clock.
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration, tokens persistence.TokenRepository, now func() time.Time) adapter.TokenService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	if now == nil {
		now = time.Now
	}
	return &tokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		tokens:     tokens,
		now:        now,
	}
}

func (s *tokenService) Issue(ctx context.Context, userID uuid.UUID, username string) (*adapter.TokenPair, error) {
	issuedAt := s.now().UTC()

	access, err := s.sign(userID, username, accessKind, issuedAt, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.sign(userID, username, refreshKind, issuedAt, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	if err := s.tokens.StoreRefresh(ctx, refresh, userID, issuedAt, issuedAt.Add(s.refreshTTL)); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &adapter.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *tokenService) ParseAccess(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.parse(token, accessKind)
}

func (s *tokenService) Rotate(ctx context.Context, refreshToken string) (*adapter.TokenPair, error) {
	claims, err := s.parse(refreshToken, refreshKind)
	if err != nil {
		return nil, err
	}

	live, err := s.tokens.ConsumeRefresh(ctx, refreshToken, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to spend refresh token: %w", err)
	}
	if !live {
		return nil, fmt.Errorf("refresh token was revoked: %w", domainerror.ErrInvalidToken)
	}

	return s.Issue(ctx, claims.UserID, claims.Username)
}

func (s *tokenService) Revoke(ctx context.Context, refreshToken string) error {
	return s.tokens.RevokeRefresh(ctx, refreshToken, s.now())
}

func (s *tokenService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	return s.tokens.RevokeAllRefresh(ctx, userID, s.now())
}

func (s *tokenService) sign(userID uuid.UUID, username string, kind tokenKind, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := sessionClaims{
		Username: username,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// parse verifies signature, issuer and lifetime against the service clock and
// insists on the expected kind so a refresh token never passes as access.
func (s *tokenService) parse(token string, want tokenKind) (*adapter.TokenClaims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("%w: %w", domainerror.ErrExpiredToken, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", domainerror.ErrInvalidToken, err)
	}

	if claims.Kind != want {
		return nil, fmt.Errorf("%w: expected %s token, got %q", domainerror.ErrInvalidToken, want, claims.Kind)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject: %w", domainerror.ErrInvalidToken, err)
	}

	return &adapter.TokenClaims{
		UserID:    userID,
		Username:  claims.Username,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

type passwordResetTokenService struct {
	tokens persistence.TokenRepository
	now    func() time.Time
}

// NewPasswordResetTokenService issues hour-long single-use reset tokens.
func NewPasswordResetTokenService(tokens persistence.TokenRepository, now func() time.Time) adapter.PasswordResetTokenService {
	if now == nil {
		now = time.Now
	}
	return &passwordResetTokenService{tokens: tokens, now: now}
}

func (s *passwordResetTokenService) Issue(ctx context.Context, userID uuid.UUID, email string) (*adapter.PasswordResetToken, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	token := hex.EncodeToString(buf)

	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(resetTokenTTL)
	if err := s.tokens.StoreReset(ctx, token, userID, email, issuedAt, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store reset token: %w", err)
	}

	return &adapter.PasswordResetToken{Token: token, UserID: userID, Email: email, ExpiresAt: expiresAt}, nil
}

func (s *passwordResetTokenService) Redeem(ctx context.Context, token string) (*adapter.PasswordResetToken, error) {
	stored, err := s.tokens.FindReset(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up reset token: %w", err)
	}
	if stored == nil {
		return nil, domainerror.ErrInvalidResetToken
	}

	now := s.now()
	if !now.Before(stored.ExpiresAt) {
		return nil, domainerror.ErrExpiredToken
	}

	spent, err := s.tokens.ConsumeReset(ctx, token, now)
	if err != nil {
		return nil, fmt.Errorf("failed to spend reset token: %w", err)
	}
	if !spent {
		// lost a race with a concurrent redeem
		return nil, domainerror.ErrInvalidResetToken
	}

	return &adapter.PasswordResetToken{
		Token:     token,
		UserID:    stored.UserID,
		Email:     stored.Email,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}
