package utils_test

import (
	"testing"

	"github.com/finbooks/bookkeeping_app/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		currencyCode string
		want         string
	}{
		{"usd rounds to cents", "1234.5", "USD", "$1,234.50"},
		{"usd negative", "-42.135", "USD", "-$42.14"},
		{"eur", "99.99", "EUR", "€99.99"},
		{"jpy has no minor units", "1234.4", "JPY", "¥1,234"},
		{"unknown code falls back to usd", "10", "???", "$10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := utils.FormatAmount(decimal.RequireFromString(tt.amount), tt.currencyCode)
			assert.Equal(t, tt.want, got)
		})
	}
}
