package model

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is an optional decimal quantity (hours, miles or currency).
// The zero value is absent. Absent and zero are interchangeable in every
// computation; OrZero is the only accessor aggregation uses.
type Number struct {
	Value decimal.Decimal
	Valid bool
}

// NewNumber returns a present Number holding d.
func NewNumber(d decimal.Decimal) Number {
	return Number{Value: d, Valid: true}
}

// NumberFromFloat is a convenience for literals in callers and tests.
func NumberFromFloat(f float64) Number {
	return NewNumber(decimal.NewFromFloat(f))
}

// ParseNumber coerces free-text input. Blank or unparseable input yields an
// absent Number rather than an error.
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Number{}
	}
	return NewNumber(d)
}

// OrZero returns the value, or zero when absent.
func (n Number) OrZero() decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Value
}

// IsNegative reports whether a present value is below zero.
func (n Number) IsNegative() bool {
	return n.Valid && n.Value.IsNegative()
}

// Equal compares by numeric value, so 8.50 equals 8.5.
func (n Number) Equal(o Number) bool {
	if n.Valid != o.Valid {
		return false
	}
	return !n.Valid || n.Value.Equal(o.Value)
}

func (n Number) String() string {
	if !n.Valid {
		return ""
	}
	return n.Value.String()
}

// MarshalJSON writes null when absent and an unquoted decimal otherwise.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(n.Value.String()), nil
}

// UnmarshalJSON accepts numbers, quoted numbers, "" and null. Anything it
// cannot parse decodes as absent.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}
	*n = ParseNumber(string(bytes.Trim(data, `"`)))
	return nil
}
