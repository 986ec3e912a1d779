package ingest

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	moneyNoise = regexp.MustCompile(`[,\s$]`)
	dotRuns    = regexp.MustCompile(`\.{3,}`)
)

// Deellipsis removes runs of three or more dots, a corruption found in
// some exports where "16000" reads "16...000".
func Deellipsis(text string) string { return dotRuns.ReplaceAllString(text, "") }

// ParseMoney reads an amount like "$1,234.50" or "(12.00)". Parentheses
// mean negative. Blank or unreadable values are zero.
func ParseMoney(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	v, err := decimal.NewFromString(moneyNoise.ReplaceAllString(s, ""))
	if err != nil {
		return decimal.Zero
	}
	if neg {
		return v.Neg()
	}
	return v
}

// ParseNumber reads a plain number, thousands separators allowed. Blank or
// unreadable values are zero.
func ParseNumber(s string) decimal.Decimal {
	v, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return v
}
