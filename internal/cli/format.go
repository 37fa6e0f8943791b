// Package cli provides the command-line interface for the wealth tracker.
package cli

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatCurrency formats an amount with thousands separators, e.g. £1,234,567.89.
func FormatCurrency(amount float64, symbol string) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	intPart := groupThousands(parts[0])

	result := symbol + intPart + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts a comma every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatRate formats an unsigned annual rate.
func FormatRate(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// FormatCompact formats a number in compact form (k/m).
func FormatCompact(amount float64, symbol string) string {
	abs := math.Abs(amount)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%s%.2fm", signPrefix(amount, symbol), abs/1_000_000)
	case abs >= 10_000:
		return fmt.Sprintf("%s%.1fk", signPrefix(amount, symbol), abs/1_000)
	default:
		return FormatCurrency(amount, symbol)
	}
}

func signPrefix(amount float64, symbol string) string {
	if amount < 0 {
		return "-" + symbol
	}
	return symbol
}

// FormatDate formats a date for display.
func FormatDate(t time.Time) string {
	return t.Format("02 Jan 2006")
}

// FormatMonth formats a month label.
func FormatMonth(t time.Time) string {
	return t.Format("Jan 2006")
}

// FormatOptionalDate formats a possibly-absent date.
func FormatOptionalDate(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return FormatDate(*t)
}

// ParseDate parses a user-entered date in ISO or UK short form.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "02/01/2006", "Jan 2006", "2006-01"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (expected YYYY-MM-DD)", s)
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// ShortID returns the leading segment of an identifier for display.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
