package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

func init() {
	// Every decimal in this binary is a money amount or a rate, and all of
	// them travel as JSON numbers: API bodies, events and the persisted
	// document alike. The switch is process-wide.
	decimal.MarshalJSONWithoutQuotes = true
}

// maxExponent bounds the exponent accepted by ParseAmount. "1e50000000" is
// a short string but renders as fifty million digits.
const maxExponent = 18

// MaxAmount is the largest amount or exchange rate the ledger accepts.
var MaxAmount = decimal.New(1, 15)

// InRange reports whether d is greater than zero and at most MaxAmount.
func InRange(d decimal.Decimal) bool {
	// The exponent check runs first: comparing rescales to the smaller
	// exponent, which is itself costly for extreme exponents.
	if !d.IsPositive() || d.Exponent() > maxExponent {
		return false
	}
	return d.LessThanOrEqual(MaxAmount)
}

// ParseAmount parses the leading numeric part of s. It never fails: input
// without a numeric prefix yields zero, and trailing garbage is ignored
// ("12.5abc" parses as 12.5).
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	n := numericPrefix(s)
	if n == 0 {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(s[:n], "+"))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// numericPrefix returns the length of the longest prefix of s that forms a
// decimal literal with an optional sign and exponent. It returns 0 when the
// exponent's magnitude exceeds maxExponent.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			exp := 0
			for j < len(s) && isDigit(s[j]) {
				if exp <= maxExponent {
					exp = exp*10 + int(s[j]-'0')
				}
				j++
			}
			if exp > maxExponent {
				return 0
			}
			i = j
		}
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// FormAmount is an amount submitted by a form. It accepts either a JSON
// number or a numeric string and parses both permissively.
type FormAmount struct {
	decimal.Decimal
}

// NewFormAmount wraps d.
func NewFormAmount(d decimal.Decimal) FormAmount {
	return FormAmount{Decimal: d}
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *FormAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
		a.Decimal = ParseAmount(s)
		return nil
	}
	a.Decimal = ParseAmount(string(data))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a FormAmount) MarshalJSON() ([]byte, error) {
	return a.Decimal.MarshalJSON()
}
