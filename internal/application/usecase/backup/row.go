// Package backup exports a user's ledger and imports it back without duplicating events.
package backup

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// Format names a backup encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// columns is the CSV and XLSX header and the JSON field set of a backup row.
var columns = []string{"id", "date", "name", "amount", "type", "description", "source", "category", "bank_name"}

const dateLayout = "2006-01-02"

// Row is one exported transaction.
type Row struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Source      string          `json:"source"`
	Category    string          `json:"category"`
	BankName    string          `json:"bank_name"`
}

func rowFromTransaction(t *entity.Transaction) Row {
	return Row{
		ID:          t.ID.String(),
		Date:        t.Date.Format(dateLayout),
		Name:        t.Name,
		Amount:      t.Amount,
		Type:        string(t.Direction),
		Description: t.Description,
		Source:      string(t.Origin),
		Category:    t.Category,
		BankName:    t.BankName,
	}
}

func (r Row) values() []string {
	return []string{r.ID, r.Date, r.Name, r.Amount.String(), r.Type, r.Description, r.Source, r.Category, r.BankName}
}

// parseDate accepts a plain date or an RFC 3339 timestamp and keeps the calendar date.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, err
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func unsupportedFormat() error {
	return domainerror.NewBackupError(
		domainerror.ErrCodeUnsupportedFormat,
		"format must be 'csv', 'json' or 'xlsx'",
		domainerror.ErrUnsupportedFormat,
	)
}
