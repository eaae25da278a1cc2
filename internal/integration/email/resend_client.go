// Package email delivers queued notification emails.
package email

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/personal-ledger/backend/internal/application/adapter"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// ResendClient sends email through the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewResendClient creates a client for the public Resend API.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client: resend.NewClient(apiKey),
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}
}

// NewResendClientWithBaseURL creates a client that talks to baseURL instead of
// the public API, e.g. a relay or a local stub.
func NewResendClientWithBaseURL(apiKey, fromName, fromEmail, baseURL string) (*ResendClient, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid resend base url: %w", err)
	}
	c := NewResendClient(apiKey, fromName, fromEmail)
	c.client.BaseURL = u
	return c, nil
}

// Send delivers one email and returns Resend's message id.
func (c *ResendClient) Send(ctx context.Context, email adapter.OutgoingEmail) (string, error) {
	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	})
	if err != nil {
		if permanentSendError(ctx, err) {
			return "", domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "resend rejected the email", err)
		}
		return "", domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "resend send failed", err)
	}
	return resp.Id, nil
}

// rejectionMarkers appear in Resend errors for requests that will never
// succeed as sent: bad credentials, an unverified sender or a malformed payload.
var rejectionMarkers = []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid"}

// permanentSendError separates rejections from transport trouble, rate
// limiting and provider outages, which are all worth a retry.
func permanentSendError(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") {
		return false
	}
	for _, marker := range rejectionMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

var _ adapter.EmailSender = (*ResendClient)(nil)
