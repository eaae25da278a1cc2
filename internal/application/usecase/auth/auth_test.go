package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

type memoryUsers struct {
	byID    map[uuid.UUID]*entity.User
	deleted []uuid.UUID
}

func newMemoryUsers(users ...*entity.User) *memoryUsers {
	m := &memoryUsers{byID: map[uuid.UUID]*entity.User{}}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memoryUsers) Create(_ context.Context, u *entity.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memoryUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (m *memoryUsers) find(match func(*entity.User) bool) (*entity.User, error) {
	for _, u := range m.byID {
		if match(u) {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Email == email })
}

func (m *memoryUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Username == username })
}

func (m *memoryUsers) Update(_ context.Context, u *entity.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memoryUsers) DeleteWithData(_ context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *memoryUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := m.FindByEmail(ctx, email)
	return u != nil, nil
}

func (m *memoryUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, _ := m.FindByUsername(ctx, username)
	return u != nil, nil
}

// plainPasswords "hashes" by prefixing so tests stay fast and readable.
type plainPasswords struct{}

func (plainPasswords) HashPassword(p string) (string, error) { return "hashed:" + p, nil }

func (plainPasswords) VerifyPassword(hash, p string) error {
	if hash != "hashed:"+p {
		return errors.New("mismatch")
	}
	return nil
}

func (plainPasswords) ValidatePasswordStrength(p string) error {
	if len(p) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}

type recordingTokens struct {
	issued     []uuid.UUID
	revokedAll []uuid.UUID
	rotateErr  error
}

func (r *recordingTokens) Issue(_ context.Context, userID uuid.UUID, _ string) (*adapter.TokenPair, error) {
	r.issued = append(r.issued, userID)
	return &adapter.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (r *recordingTokens) ParseAccess(context.Context, string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

func (r *recordingTokens) Rotate(context.Context, string) (*adapter.TokenPair, error) {
	if r.rotateErr != nil {
		return nil, r.rotateErr
	}
	return &adapter.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}, nil
}

func (r *recordingTokens) Revoke(context.Context, string) error { return nil }

func (r *recordingTokens) RevokeAll(_ context.Context, userID uuid.UUID) error {
	r.revokedAll = append(r.revokedAll, userID)
	return nil
}

type scriptedResets struct {
	grant     *adapter.PasswordResetToken
	redeemErr error
	redeemed  int
}

func (s *scriptedResets) Issue(_ context.Context, userID uuid.UUID, email string) (*adapter.PasswordResetToken, error) {
	s.grant = &adapter.PasswordResetToken{Token: "abc123", UserID: userID, Email: email}
	return s.grant, nil
}

func (s *scriptedResets) Redeem(context.Context, string) (*adapter.PasswordResetToken, error) {
	s.redeemed++
	if s.redeemErr != nil {
		return nil, s.redeemErr
	}
	return s.grant, nil
}

type capturedMail struct {
	resets []adapter.QueuePasswordResetInput
}

func (c *capturedMail) QueuePasswordResetEmail(_ context.Context, in adapter.QueuePasswordResetInput) error {
	c.resets = append(c.resets, in)
	return nil
}

func (c *capturedMail) QueueBudgetAlertEmail(context.Context, adapter.QueueBudgetAlertInput) error {
	return nil
}

type countingSeeder struct{ seeded []uuid.UUID }

func (c *countingSeeder) Execute(_ context.Context, userID uuid.UUID) error {
	c.seeded = append(c.seeded, userID)
	return nil
}

func authCode(err error) domainerror.AuthErrorCode {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		return authErr.Code
	}
	return ""
}

func alice() *entity.User {
	return entity.NewUser("alice", "alice@example.com", "Alice", "Doe", "hashed:SecurePass123!")
}

func TestRegisterUserUseCase(t *testing.T) {
	ctx := context.Background()

	// Input is normalised, the user seeded and signed in.
	t.Run("registers and seeds", func(t *testing.T) {
		users := newMemoryUsers()
		tokens := &recordingTokens{}
		seeder := &countingSeeder{}
		uc := NewRegisterUserUseCase(users, plainPasswords{}, tokens, seeder)

		session, err := uc.Execute(ctx, RegisterUserInput{
			Username: "  alice ",
			Email:    " Alice@Example.COM ",
			Password: "SecurePass123!",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if session.User.Email != "alice@example.com" || session.User.Username != "alice" {
			t.Errorf("expected normalised alice/alice@example.com, got %s/%s", session.User.Username, session.User.Email)
		}
		if session.User.PasswordHash != "hashed:SecurePass123!" {
			t.Errorf("expected stored hash, got %q", session.User.PasswordHash)
		}
		if len(seeder.seeded) != 1 || len(tokens.issued) != 1 {
			t.Errorf("expected one seed and one token pair, got %d and %d", len(seeder.seeded), len(tokens.issued))
		}
	})

	tests := []struct {
		name  string
		input RegisterUserInput
		want  domainerror.AuthErrorCode
	}{
		{"username too short", RegisterUserInput{Username: "al", Email: "x@example.com", Password: "SecurePass123!"}, domainerror.ErrCodeMissingFields},
		{"bad email", RegisterUserInput{Username: "bob", Email: "bob@nowhere", Password: "SecurePass123!"}, domainerror.ErrCodeInvalidEmail},
		{"weak password", RegisterUserInput{Username: "bob", Email: "bob@example.com", Password: "short"}, domainerror.ErrCodeWeakPassword},
		{"username taken", RegisterUserInput{Username: "alice", Email: "bob@example.com", Password: "SecurePass123!"}, domainerror.ErrCodeUsernameExists},
		{"email taken", RegisterUserInput{Username: "bob", Email: "ALICE@example.com", Password: "SecurePass123!"}, domainerror.ErrCodeEmailExists},
	}
	for _, tt := range tests {
		// Each invalid registration is refused with its own code.
		t.Run(tt.name, func(t *testing.T) {
			uc := NewRegisterUserUseCase(newMemoryUsers(alice()), plainPasswords{}, &recordingTokens{}, nil)
			_, err := uc.Execute(ctx, tt.input)
			if got := authCode(err); got != tt.want {
				t.Errorf("expected %s, got %s (%v)", tt.want, got, err)
			}
		})
	}
}

func TestLoginUserUseCase(t *testing.T) {
	ctx := context.Background()
	user := alice()
	uc := NewLoginUserUseCase(newMemoryUsers(user), plainPasswords{}, &recordingTokens{})

	tests := []struct {
		name       string
		identifier string
		password   string
		wantErr    bool
	}{
		{"username", "alice", "SecurePass123!", false},
		{"email in any case", " ALICE@example.com ", "SecurePass123!", false},
		{"wrong password", "alice", "nope-nope", true},
		{"unknown user", "bob", "SecurePass123!", true},
	}
	for _, tt := range tests {
		// Unknown users and wrong passwords fail the same way.
		t.Run(tt.name, func(t *testing.T) {
			session, err := uc.Execute(ctx, LoginUserInput{Identifier: tt.identifier, Password: tt.password})
			if tt.wantErr {
				if got := authCode(err); got != domainerror.ErrCodeInvalidCredentials {
					t.Errorf("expected %s, got %s", domainerror.ErrCodeInvalidCredentials, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if session.User.ID != user.ID {
				t.Errorf("expected user %s, got %s", user.ID, session.User.ID)
			}
		})
	}
}

func TestRefreshTokenUseCase(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		rotateErr error
		want      domainerror.AuthErrorCode
	}{
		{"rotated", nil, ""},
		{"revoked", domainerror.ErrInvalidToken, domainerror.ErrCodeInvalidToken},
		{"expired", domainerror.ErrExpiredToken, domainerror.ErrCodeExpiredToken},
	}
	for _, tt := range tests {
		// Token service failures surface as coded auth errors.
		t.Run(tt.name, func(t *testing.T) {
			uc := NewRefreshTokenUseCase(&recordingTokens{rotateErr: tt.rotateErr})
			pair, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: "refresh"})
			if got := authCode(err); got != tt.want {
				t.Fatalf("expected code %q, got %q (%v)", tt.want, got, err)
			}
			if tt.want == "" && pair.RefreshToken != "refresh-2" {
				t.Errorf("expected rotated pair, got %+v", pair)
			}
		})
	}
}

func TestForgotPasswordUseCase(t *testing.T) {
	ctx := context.Background()

	// A known address gets a reset link built from the app URL.
	t.Run("known email", func(t *testing.T) {
		mail := &capturedMail{}
		uc := NewForgotPasswordUseCase(newMemoryUsers(alice()), &scriptedResets{}, mail, "https://ledger.example.com")

		if err := uc.Execute(ctx, ForgotPasswordInput{Email: "Alice@Example.com"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(mail.resets) != 1 {
			t.Fatalf("expected 1 queued email, got %d", len(mail.resets))
		}
		if got := mail.resets[0].ResetURL; got != "https://ledger.example.com/reset-password?token=abc123" {
			t.Errorf("unexpected reset url %q", got)
		}
		if mail.resets[0].UserName != "Alice Doe" {
			t.Errorf("expected Alice Doe, got %q", mail.resets[0].UserName)
		}
	})

	// An unknown address succeeds silently.
	t.Run("unknown email", func(t *testing.T) {
		mail := &capturedMail{}
		uc := NewForgotPasswordUseCase(newMemoryUsers(), &scriptedResets{}, mail, "https://ledger.example.com")
		if err := uc.Execute(ctx, ForgotPasswordInput{Email: "nobody@example.com"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(mail.resets) != 0 {
			t.Errorf("expected no email, got %d", len(mail.resets))
		}
	})

	// Only a malformed address is an error.
	t.Run("malformed email", func(t *testing.T) {
		uc := NewForgotPasswordUseCase(newMemoryUsers(), &scriptedResets{}, nil, "")
		if got := authCode(uc.Execute(ctx, ForgotPasswordInput{Email: "not-an-email"})); got != domainerror.ErrCodeInvalidEmail {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeInvalidEmail, got)
		}
	})
}

func TestResetPasswordUseCase(t *testing.T) {
	ctx := context.Background()

	// A valid token sets the password and signs out every session.
	t.Run("resets and revokes", func(t *testing.T) {
		user := alice()
		resets := &scriptedResets{grant: &adapter.PasswordResetToken{UserID: user.ID}}
		tokens := &recordingTokens{}
		uc := NewResetPasswordUseCase(newMemoryUsers(user), plainPasswords{}, resets, tokens)

		if err := uc.Execute(ctx, ResetPasswordInput{Token: "abc123", NewPassword: "BrandNewPass123!"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user.PasswordHash != "hashed:BrandNewPass123!" {
			t.Errorf("expected new hash, got %q", user.PasswordHash)
		}
		if len(tokens.revokedAll) != 1 || tokens.revokedAll[0] != user.ID {
			t.Errorf("expected sessions of %s revoked, got %v", user.ID, tokens.revokedAll)
		}
	})

	// A weak password is refused before the token is spent.
	t.Run("weak password keeps token", func(t *testing.T) {
		resets := &scriptedResets{grant: &adapter.PasswordResetToken{UserID: uuid.New()}}
		uc := NewResetPasswordUseCase(newMemoryUsers(), plainPasswords{}, resets, &recordingTokens{})

		err := uc.Execute(ctx, ResetPasswordInput{Token: "abc123", NewPassword: "short"})
		if got := authCode(err); got != domainerror.ErrCodeWeakPassword {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeWeakPassword, got)
		}
		if resets.redeemed != 0 {
			t.Errorf("expected token untouched, redeemed %d times", resets.redeemed)
		}
	})

	tests := []struct {
		name      string
		redeemErr error
		want      domainerror.AuthErrorCode
	}{
		{"expired token", domainerror.ErrExpiredToken, domainerror.ErrCodeExpiredResetToken},
		{"unknown token", domainerror.ErrInvalidResetToken, domainerror.ErrCodeInvalidResetToken},
	}
	for _, tt := range tests {
		// Redeem failures keep their distinct codes.
		t.Run(tt.name, func(t *testing.T) {
			uc := NewResetPasswordUseCase(newMemoryUsers(), plainPasswords{}, &scriptedResets{redeemErr: tt.redeemErr}, &recordingTokens{})
			err := uc.Execute(ctx, ResetPasswordInput{Token: "abc123", NewPassword: "BrandNewPass123!"})
			if got := authCode(err); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDeleteAccountUseCase(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		password     string
		confirmation string
		want         domainerror.AuthErrorCode
	}{
		{"confirmed", "SecurePass123!", "DELETE", ""},
		{"confirmation omitted", "SecurePass123!", "", ""},
		{"wrong confirmation", "SecurePass123!", "delete", domainerror.ErrCodeInvalidConfirmation},
		{"wrong password", "nope-nope", "DELETE", domainerror.ErrCodeInvalidCredentials},
	}
	for _, tt := range tests {
		// Deletion needs the password and, if given, the exact confirmation word.
		t.Run(tt.name, func(t *testing.T) {
			user := alice()
			users := newMemoryUsers(user)
			uc := NewDeleteAccountUseCase(users, plainPasswords{}, &recordingTokens{})

			err := uc.Execute(ctx, DeleteAccountInput{UserID: user.ID, Password: tt.password, Confirmation: tt.confirmation})
			if got := authCode(err); got != tt.want {
				t.Fatalf("expected %q, got %q (%v)", tt.want, got, err)
			}
			deleted := len(users.deleted) == 1
			if deleted != (tt.want == "") {
				t.Errorf("expected deleted=%v, got %v", tt.want == "", deleted)
			}
		})
	}
}

func TestChangePasswordUseCase(t *testing.T) {
	ctx := context.Background()

	// The current password must match before anything changes.
	t.Run("wrong current password", func(t *testing.T) {
		user := alice()
		uc := NewChangePasswordUseCase(newMemoryUsers(user), plainPasswords{}, &recordingTokens{})
		err := uc.Execute(ctx, ChangePasswordInput{UserID: user.ID, CurrentPassword: "guess-guess", NewPassword: "BrandNewPass123!"})
		if got := authCode(err); got != domainerror.ErrCodeWrongPassword {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeWrongPassword, got)
		}
		if !strings.HasSuffix(user.PasswordHash, "SecurePass123!") {
			t.Errorf("expected password unchanged, got %q", user.PasswordHash)
		}
	})

	// A successful change revokes existing sessions.
	t.Run("changes and revokes", func(t *testing.T) {
		user := alice()
		tokens := &recordingTokens{}
		uc := NewChangePasswordUseCase(newMemoryUsers(user), plainPasswords{}, tokens)
		if err := uc.Execute(ctx, ChangePasswordInput{UserID: user.ID, CurrentPassword: "SecurePass123!", NewPassword: "BrandNewPass123!"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user.PasswordHash != "hashed:BrandNewPass123!" {
			t.Errorf("expected new hash, got %q", user.PasswordHash)
		}
		if len(tokens.revokedAll) != 1 {
			t.Errorf("expected 1 revoke-all, got %d", len(tokens.revokedAll))
		}
	})
}
