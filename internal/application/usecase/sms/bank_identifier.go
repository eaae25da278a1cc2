// Package sms turns bank notification messages into ledger transactions.
package sms

import (
	"log/slog"
	"strings"

	"github.com/personal-ledger/backend/internal/domain/entity"
	"github.com/personal-ledger/backend/internal/domain/valueobject"
)

// bankResolver returns the bank name for a message, or false when it cannot tell.
type bankResolver func(sender, body string, aliases []*entity.BankAlias) (string, bool)

// bankResolvers are tried in order; the first hit wins.
var bankResolvers = []bankResolver{
	resolveByAlias,
	resolveByPattern,
	resolveByPrefix,
}

// IdentifyBank maps a sender id and message body to a canonical bank name.
// User aliases beat built-in patterns, which beat sender prefixes.
// It returns entity.UnknownBank when nothing matches.
func IdentifyBank(sender, body string, aliases []*entity.BankAlias) string {
	for _, resolve := range bankResolvers {
		if bank, ok := resolve(sender, body, aliases); ok {
			return bank
		}
	}
	return entity.UnknownBank
}

func resolveByAlias(sender, body string, aliases []*entity.BankAlias) (string, bool) {
	lowerSender := strings.ToLower(sender)
	lowerBody := strings.ToLower(body)

	for _, a := range aliases {
		needle := strings.ToLower(a.Alias)
		if needle == "" {
			continue
		}
		if strings.Contains(lowerSender, needle) || strings.Contains(lowerBody, needle) {
			slog.Debug("Bank resolved by alias", "alias", a.Alias, "bank", a.BankName)
			return a.BankName, true
		}
	}
	return "", false
}

func resolveByPattern(sender, body string, _ []*entity.BankAlias) (string, bool) {
	for _, p := range valueobject.BankPatterns() {
		if p.Pattern.MatchString(sender) || p.Pattern.MatchString(body) {
			return p.BankName, true
		}
	}
	return "", false
}

func resolveByPrefix(sender, _ string, _ []*entity.BankAlias) (string, bool) {
	upper := strings.ToUpper(sender)
	for _, p := range valueobject.SenderPrefixes() {
		if strings.Contains(upper, p.Code) {
			return p.BankName, true
		}
	}
	return "", false
}
