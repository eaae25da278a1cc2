package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

var displayLocation = time.UTC

// SetDisplayTimezone sets the zone timestamps are rendered in.
// An unknown zone name leaves the current zone in place.
func SetDisplayTimezone(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	displayLocation = loc
	return nil
}

// FormatTimestamp renders t in the display timezone.
func FormatTimestamp(t time.Time) string {
	return t.In(displayLocation).Format(time.RFC3339)
}

// FormatDate renders the calendar date of t.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FormatAmount renders an amount with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatOptionalAmount renders an optional amount, nil stays nil.
func FormatOptionalAmount(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
