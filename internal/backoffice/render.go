package backoffice

import (
	"strconv"
	"strings"
	"time"
)

// FormatAmount renders a minor-unit amount using the currency's exponent
// (4250 with exponent 2 -> "42.50").
func FormatAmount(amount int64, exponent int) string {
	if exponent <= 0 {
		return strconv.FormatInt(amount, 10)
	}
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	for len(digits) <= exponent {
		digits = "0" + digits
	}
	result := digits[:len(digits)-exponent] + "." + digits[len(digits)-exponent:]
	if negative {
		result = "-" + result
	}
	return result
}

// StatusBadge renders a status value as a badge label ("pending" -> "Pending")
func StatusBadge(status string) string {
	if status == "" {
		return ""
	}
	return strings.ToUpper(status[:1]) + status[1:]
}

// MaskIdentifier hides the middle part of an identifier, keeping the first and
// last four characters ("9f3a5c71-..." -> "9f3a…5c71"). Short values are
// masked entirely.
func MaskIdentifier(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("•", len(value))
	}
	return value[:4] + "…" + value[len(value)-4:]
}

// FormatTimestamp renders a timestamp in UTC ("2024-03-01 14:05")
func FormatTimestamp(value time.Time) string {
	return value.UTC().Format("2006-01-02 15:04")
}
