package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ContractorProfile is the singleton record describing who bills.
type ContractorProfile struct {
	Name          string    `json:"name"`
	BusinessName  string    `json:"business"`
	DefaultClient string    `json:"defaultClient,omitempty"`
	ClientAddress string    `json:"clientAddress,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	DefaultRates  RateTable `json:"defaultRates,omitempty"`
}

// RateTable maps an hour category to an hourly currency rate.
type RateTable map[HourCategory]Number

// Rate returns the rate for c, zero when unset.
func (r RateTable) Rate(c HourCategory) decimal.Decimal {
	return r[c].OrZero()
}

// Has reports whether a rate is set for c.
func (r RateTable) Has(c HourCategory) bool {
	return r[c].Valid
}

// Any reports whether at least one category has a rate.
func (r RateTable) Any() bool {
	for _, n := range r {
		if n.Valid {
			return true
		}
	}
	return false
}

// Merge returns a copy of r with categories unset in r filled from fallback.
func (r RateTable) Merge(fallback RateTable) RateTable {
	out := make(RateTable, len(r)+len(fallback))
	for c, n := range fallback {
		if n.Valid {
			out[c] = n
		}
	}
	for c, n := range r {
		if n.Valid {
			out[c] = n
		}
	}
	return out
}

// InvoiceDraft holds everything needed to render one invoice. It is never
// persisted; only its rates and terms are remembered through InvoiceMemo.
type InvoiceDraft struct {
	Number        string
	ClientName    string
	ClientAddress string
	IssueDate     string
	DueDate       string
	PaymentTerms  string
	Notes         string
	Rates         RateTable
	EntryIDs      []string
}

// Memo returns the part of the draft that is reused across invoices.
func (d InvoiceDraft) Memo() InvoiceMemo {
	return InvoiceMemo{Rates: d.Rates, PaymentTerms: d.PaymentTerms}
}

// InvoiceMemo is the persisted rate/terms memo.
type InvoiceMemo struct {
	Rates        RateTable `json:"rates,omitempty"`
	PaymentTerms string    `json:"paymentTerms,omitempty"`
}

// Theme is the display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when no preference is stored.
const DefaultTheme = ThemeDark

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
}
