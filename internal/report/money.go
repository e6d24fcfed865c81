package report

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney displays amount in the given ISO currency, for example
// "$1,500.00" for USD. Unknown currency codes fall back to the grouped amount
// with two decimals followed by the code.
func FormatMoney(amount decimal.Decimal, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	cur := money.GetCurrency(code)
	if cur == nil {
		return strings.TrimSpace(FormatQuantity(amount) + " " + code)
	}

	factor := decimal.New(1, int32(cur.Fraction))
	minor := amount.Mul(factor).Round(0).IntPart()
	return money.New(minor, code).Display()
}

// quantityFormat groups thousands with commas and keeps two decimals.
var quantityFormat = money.NewFormatter(2, ".", ",", "", "1")

// FormatQuantity displays a share count with two decimals and thousands
// separators, for example "1,234.50".
func FormatQuantity(quantity decimal.Decimal) string {
	return quantityFormat.Format(quantity.Shift(2).Round(0).IntPart())
}
