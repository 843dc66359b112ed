package utils

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned when a money string cannot be parsed.
var ErrInvalidAmount = errors.New("invalid money amount")

// ParseDollarsToCents converts a decimal dollar string such as "1500.50"
// into integer cents. Anything beyond two decimal places is truncated
// toward zero, so fractional cents never enter the ledger.
func ParseDollarsToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}

	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	var cents int64
	if frac != "" {
		// Only the first two fractional digits count as cents.
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
	}

	total := dollars*100 + cents
	if negative {
		total = -total
	}
	return total, nil
}
