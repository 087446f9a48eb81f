package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatAmount renders a decimal amount in the given display currency, e.g.
// 1234.5 with "USD" becomes "$1,234.50". The currency code is an explicit
// parameter threaded down from configuration; there is no process-wide
// currency setting.
func FormatAmount(amount decimal.Decimal, currencyCode string) string {
	currency := money.GetCurrency(currencyCode)
	if currency == nil {
		currency = money.GetCurrency(money.USD)
	}
	minorUnits := amount.Shift(int32(currency.Fraction)).Round(0).IntPart()
	return money.New(minorUnits, currency.Code).Display()
}
