// Package format renders money, percentages and quantities for reports.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if amount < 0 {
		return "-$" + NumericCurrency(math.Abs(amount))
	}
	return "$" + NumericCurrency(amount)
}

// WholeCurrency is Currency without cents (e.g., "$1,200,000").
func WholeCurrency(amount float64) string {
	rounded := math.Round(amount)
	if rounded < 0 {
		return printer.Sprintf("-$%.0f", -rounded)
	}
	return printer.Sprintf("$%.0f", rounded)
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return printer.Sprintf("%.2f", amount)
}

// Percent renders a percentage with two decimals (e.g., "39.27%").
func Percent(value float64) string {
	return printer.Sprintf("%.2f%%", value)
}

// Tonnes renders a kilogram quantity in metric tonnes (e.g., "119.5 t").
func Tonnes(kg float64) string {
	return printer.Sprintf("%.1f t", kg/1000)
}
