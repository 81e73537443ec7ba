package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount in whole rupees. Formatted amounts coming off the
// wire ("₹2.5 Cr", "₹25 Lakh", "₹25,000/month") are parsed into this one
// canonical unit before any arithmetic.
type Money int64

const (
	lakh  = 100_000
	crore = 10_000_000
)

// ParseMoney converts a formatted currency string into rupees. The scale
// suffix (Cr/Lakh) is applied after stripping every character that is not
// a digit or decimal point. Rent-style "/month" suffixes are ignored.
func ParseMoney(s string) (Money, error) {
	if strings.TrimSpace(s) == "" {
		return 0, fmt.Errorf("empty amount")
	}

	lower := strings.ToLower(s)
	multiplier := 1.0
	switch {
	case strings.Contains(lower, "cr"):
		multiplier = crore
	case strings.Contains(lower, "lakh") || strings.Contains(lower, "lac"):
		multiplier = lakh
	case strings.HasSuffix(strings.TrimSpace(lower), "l"):
		multiplier = lakh
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return 0, fmt.Errorf("no numeric value in %q", s)
	}

	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return Money(v*multiplier + 0.5), nil
}

// ParseMoneyOrZero parses a formatted amount, treating malformed input as
// zero. Aggregations over server data use this so one bad record does not
// poison a sum.
func ParseMoneyOrZero(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		return 0
	}
	return m
}

// Format renders the amount the way the backend does: crores above 1 Cr,
// lakhs above 1 Lakh, plain grouped rupees below that.
func (m Money) Format() string {
	switch {
	case m >= crore:
		return trimZeros(fmt.Sprintf("₹%.2f", float64(m)/crore)) + " Cr"
	case m >= lakh:
		return trimZeros(fmt.Sprintf("₹%.2f", float64(m)/lakh)) + " Lakh"
	default:
		return "₹" + groupDigits(int64(m))
	}
}

func (m Money) String() string { return m.Format() }

func trimZeros(s string) string {
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func groupDigits(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
