package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/personal-ledger/backend/internal/application/adapter"
)

// ForgotPasswordReply is returned whether or not the address is registered.
const ForgotPasswordReply = "If an account with that email exists, we have sent a password reset link"

type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordUseCase mails a reset link. Apart from a malformed address it
// never fails, so callers cannot probe which emails have accounts.
type ForgotPasswordUseCase struct {
	users      adapter.UserRepository
	resets     adapter.PasswordResetTokenService
	mail       adapter.EmailService
	appBaseURL string
}

// NewForgotPasswordUseCase wires the reset flow. With a nil mail service the
// link is only logged, which is enough for local development.
func NewForgotPasswordUseCase(users adapter.UserRepository, resets adapter.PasswordResetTokenService, mail adapter.EmailService, appBaseURL string) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{users: users, resets: resets, mail: mail, appBaseURL: appBaseURL}
}

func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, input ForgotPasswordInput) error {
	email := normalizeEmail(input.Email)
	if err := checkEmail(email); err != nil {
		return err
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		slog.Debug("Password reset requested for unknown email", "email", email)
		return nil
	}

	token, err := uc.resets.Issue(ctx, user.ID, user.Email)
	if err != nil {
		slog.Error("Failed to issue reset token", "userID", user.ID, "error", err)
		return nil
	}
	link := fmt.Sprintf("%s/reset-password?token=%s", uc.appBaseURL, url.QueryEscape(token.Token))

	if uc.mail == nil {
		slog.Info("Email disabled, reset link not sent", "userID", user.ID, "resetURL", link)
		return nil
	}
	err = uc.mail.QueuePasswordResetEmail(ctx, adapter.QueuePasswordResetInput{
		UserEmail: user.Email,
		UserName:  user.FullName(),
		ResetURL:  link,
		ExpiresIn: "1 hour",
	})
	if err != nil {
		slog.Error("Failed to queue reset email", "userID", user.ID, "error", err)
	}
	return nil
}
