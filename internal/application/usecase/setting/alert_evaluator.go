// Package setting contains budget threshold use cases and the alert evaluator.
package setting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// BalanceKey is the synthetic spending entry holding the running balance.
const BalanceKey = "balance"

// EvaluateAlerts compares spending against a bank's settings.
// The balance alert, if any, comes first; category alerts follow in settings order.
// A category missing from spending counts as zero spent.
func EvaluateAlerts(spending map[string]decimal.Decimal, settings []*entity.Setting) []string {
	alerts := make([]string, 0)

	if minSetting := firstMinBalance(settings); minSetting != nil {
		if balance, ok := spending[BalanceKey]; ok && balance.LessThan(*minSetting.MinBalance) {
			alerts = append(alerts, fmt.Sprintf(
				"⚠️ Balance ₹%s is below minimum of ₹%s",
				balance.StringFixed(2), minSetting.MinBalance.StringFixed(2),
			))
		}
	}

	for _, s := range settings {
		if !s.HasCategoryLimit() {
			continue
		}
		spent := spending[s.Category]
		if spent.GreaterThan(*s.Limit) {
			alerts = append(alerts, fmt.Sprintf(
				"⚠️ Over budget in %s: ₹%s > ₹%s",
				s.Category, spent.StringFixed(2), s.Limit.StringFixed(2),
			))
		}
	}

	return alerts
}

func firstMinBalance(settings []*entity.Setting) *entity.Setting {
	for _, s := range settings {
		if s.MinBalance != nil {
			return s
		}
	}
	return nil
}

// BuildSpending folds a bank's transactions into spend per category plus the
// running balance under BalanceKey. Uncategorized debits land in "Others".
func BuildSpending(transactions []*entity.Transaction) map[string]decimal.Decimal {
	spending := make(map[string]decimal.Decimal)
	balance := decimal.Zero

	for _, t := range transactions {
		switch t.Direction {
		case entity.DirectionCredit:
			balance = balance.Add(t.Amount)
		case entity.DirectionDebit:
			balance = balance.Sub(t.Amount)
			category := t.Category
			if category == "" || category == entity.UncategorizedCategory {
				category = entity.OthersCategory
			}
			spending[category] = spending[category].Add(t.Amount)
		}
	}

	spending[BalanceKey] = balance
	return spending
}

// CalculateBalance returns credits minus debits.
func CalculateBalance(transactions []*entity.Transaction) decimal.Decimal {
	return BuildSpending(transactions)[BalanceKey]
}
