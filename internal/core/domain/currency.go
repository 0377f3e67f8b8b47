package domain

import (
	"fmt"
	"strings"
)

// CurrencyCode identifies a foreign currency published against the Bolívar.
type CurrencyCode string

const (
	USD CurrencyCode = "USD"
	EUR CurrencyCode = "EUR"
)

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode CurrencyCode `json:"currencyCode"` // e.g., "USD"
	Symbol       string       `json:"symbol"`       // e.g., "$"
	Name         string       `json:"name"`         // e.g., "US Dollar"
	BlockID      string       `json:"-"`            // id of the homepage block holding the rate
}

// SupportedCurrencies is the closed set of currencies the rate pipeline publishes.
var SupportedCurrencies = []Currency{
	{CurrencyCode: USD, Symbol: "$", Name: "US Dollar", BlockID: "dolar"},
	{CurrencyCode: EUR, Symbol: "€", Name: "Euro", BlockID: "euro"},
}

// ParseCurrencyCode validates a currency code case-insensitively.
func ParseCurrencyCode(raw string) (CurrencyCode, error) {
	code := CurrencyCode(strings.ToUpper(strings.TrimSpace(raw)))
	for _, c := range SupportedCurrencies {
		if c.CurrencyCode == code {
			return code, nil
		}
	}
	return "", fmt.Errorf("unsupported currency %q", raw)
}

func (c CurrencyCode) String() string {
	return string(c)
}
