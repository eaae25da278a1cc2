// Package valueobject contains immutable domain tables shared across use cases.
package valueobject

import "regexp"

// BankPattern is a whole-word matcher for a bank name appearing in an SMS.
type BankPattern struct {
	BankName string
	Pattern  *regexp.Regexp
}

// SenderPrefix maps a short sender-id code to a bank name.
type SenderPrefix struct {
	Code     string
	BankName string
}

var bankPatterns = []BankPattern{
	{BankName: "SBI", Pattern: regexp.MustCompile(`(?i)\bSBI\b`)},
	{BankName: "HDFC", Pattern: regexp.MustCompile(`(?i)\bHDFC\b`)},
	{BankName: "ICICI", Pattern: regexp.MustCompile(`(?i)\bICICI\b`)},
	{BankName: "AXIS", Pattern: regexp.MustCompile(`(?i)\bAXIS\b`)},
	{BankName: "KOTAK", Pattern: regexp.MustCompile(`(?i)\bKOTAK\b`)},
	{BankName: "BOB", Pattern: regexp.MustCompile(`(?i)\bBANK OF BARODA\b|\bBOB\b`)},
	{BankName: "Bassein Bank", Pattern: regexp.MustCompile(`(?i)\bBCCB\b`)},
}

var senderPrefixes = []SenderPrefix{
	{Code: "HDFC", BankName: "HDFC"},
	{Code: "ICIC", BankName: "ICICI"},
	{Code: "AXIS", BankName: "AXIS"},
	{Code: "SBI", BankName: "SBI"},
	{Code: "BOB", BankName: "BOB"},
	{Code: "KOTK", BankName: "KOTAK"},
}

// BankPatterns returns the built-in bank patterns in priority order.
// The returned slice is a copy; the compiled patterns are safe for concurrent use.
func BankPatterns() []BankPattern {
	out := make([]BankPattern, len(bankPatterns))
	copy(out, bankPatterns)
	return out
}

// SenderPrefixes returns the sender-id prefix table in priority order.
func SenderPrefixes() []SenderPrefix {
	out := make([]SenderPrefix, len(senderPrefixes))
	copy(out, senderPrefixes)
	return out
}
