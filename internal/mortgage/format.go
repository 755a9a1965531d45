package mortgage

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol prefixes every displayed amount.
const CurrencySymbol = "£"

var printer = message.NewPrinter(language.English)

// FormatAmount renders an amount with two fractional digits and thousands
// separators, e.g. 358475.68 -> "358,475.68". Non-finite values render as
// NaN, Infinity or -Infinity.
func FormatAmount(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return printer.Sprintf("%.2f", v)
}

// FormatCurrency is FormatAmount with the currency symbol.
func FormatCurrency(v float64) string {
	return CurrencySymbol + FormatAmount(v)
}
