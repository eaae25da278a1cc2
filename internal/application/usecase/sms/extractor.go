package sms

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// amountToken is "INR" with a decimal part, or "Rs" with an optional one.
const amountToken = `\b(INR\s*[\d,]+\.\d+|Rs\.?\s*\d[\d,]*(?:\.\d+)?)`

// transactionPattern accepts the verb before or after the amount, followed by an "on <date>" token.
// Groups: 1 verb, 2 amount (verb first) | 3 amount, 4 verb (amount first) | 5 date.
var transactionPattern = regexp.MustCompile(
	`(?i)(?:\b(credited|debited|sent|received)\b.+?` + amountToken +
		`|` + amountToken + `.+?\b(credited|debited|sent|received)\b)` +
		`.*?\bon\s+(\d{2}-\d{2}-\d{4}|\d{2}-[A-Z]{3}-\d{4})`,
)

// amountDigits pulls the number out of a matched amount token.
var amountDigits = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?$`)

var dateLayouts = []string{"02-01-2006", "02-Jan-2006"}

// ExtractedTransaction is the structured candidate read from a notification.
type ExtractedTransaction struct {
	Direction entity.Direction
	Amount    decimal.Decimal
	Date      time.Time
}

// ExtractTransaction reads direction, amount and date out of a bank SMS.
// A message that does not fit the template yields an *SMSError wrapping ErrUnparseableSMS.
func ExtractTransaction(message string) (*ExtractedTransaction, error) {
	m := transactionPattern.FindStringSubmatch(message)
	if m == nil {
		return nil, unparseable("message does not match a known transaction format")
	}

	verb, token := m[1], m[2]
	if verb == "" {
		verb, token = m[4], m[3]
	}
	rawAmount := amountDigits.FindString(token)

	direction := entity.DirectionDebit
	if strings.Contains(strings.ToLower(verb), "credit") {
		direction = entity.DirectionCredit
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(rawAmount, ",", ""))
	if err != nil {
		return nil, unparseable("invalid amount " + rawAmount)
	}
	if !amount.IsPositive() {
		return nil, unparseable("amount must be greater than zero")
	}

	date, err := parseDate(m[5])
	if err != nil {
		return nil, unparseable("invalid date " + m[5])
	}

	return &ExtractedTransaction{
		Direction: direction,
		Amount:    amount,
		Date:      date,
	}, nil
}

// parseDate accepts DD-MM-YYYY and DD-MON-YYYY and drops any time of day.
func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func unparseable(detail string) error {
	return domainerror.NewSMSError(
		domainerror.ErrCodeUnparseableSMS,
		"Could not parse SMS: "+detail,
		domainerror.ErrUnparseableSMS,
	)
}
