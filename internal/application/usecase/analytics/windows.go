// Package analytics computes and stores income/expense summaries per period.
package analytics

import (
	"time"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// StandardWindows returns the daily, weekly, monthly and yearly windows ending at now.
// Weekly, monthly and yearly are fixed 7, 30 and 365 day spans, not calendar boundaries.
func StandardWindows(now time.Time) []entity.Window {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	return []entity.Window{
		{Period: entity.PeriodDaily, Start: midnight, End: now},
		{Period: entity.PeriodWeekly, Start: now.AddDate(0, 0, -7), End: now},
		{Period: entity.PeriodMonthly, Start: now.AddDate(0, 0, -30), End: now},
		{Period: entity.PeriodYearly, Start: now.AddDate(0, 0, -365), End: now},
	}
}
