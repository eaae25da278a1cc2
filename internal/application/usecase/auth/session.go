// Package auth holds the account and session use cases.
package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,50}$`)
)

// Session is handed back by registration and login.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

func newSession(pair *adapter.TokenPair, user *entity.User) *Session {
	return &Session{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken, User: user}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return domainerror.NewAuthError(domainerror.ErrCodeInvalidEmail, "invalid email format", domainerror.ErrInvalidEmail)
	}
	return nil
}

// hashNewPassword enforces the strength rules before hashing.
func hashNewPassword(passwords adapter.PasswordService, plain string) (string, error) {
	if err := passwords.ValidatePasswordStrength(plain); err != nil {
		return "", domainerror.NewAuthError(domainerror.ErrCodeWeakPassword, err.Error(), domainerror.ErrWeakPassword)
	}
	hash, err := passwords.HashPassword(plain)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// badLogin is shared by every credential failure so responses do not reveal
// which accounts exist.
func badLogin() error {
	return domainerror.NewAuthError(domainerror.ErrCodeInvalidCredentials, "invalid username or password", domainerror.ErrInvalidCredentials)
}

// tokenFailure turns a token service error into the coded error clients see.
func tokenFailure(err error, what string) error {
	switch {
	case errors.Is(err, domainerror.ErrExpiredToken):
		return domainerror.NewAuthError(domainerror.ErrCodeExpiredToken, what+" has expired", err)
	case errors.Is(err, domainerror.ErrInvalidToken):
		return domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "invalid "+what, err)
	}
	return fmt.Errorf("failed to check %s: %w", what, err)
}
