package report

import "github.com/shopspring/decimal"

// Money formats an amount the way reports print it: "58.00 zł".
func Money(d decimal.Decimal) string {
	return d.StringFixed(2) + " zł"
}

// Hours formats a number of hours with one decimal place.
func Hours(d decimal.Decimal) string {
	return d.StringFixed(1)
}

// Rate formats an hourly rate: "25 zł/godz.".
func Rate(d decimal.Decimal) string {
	return d.String() + " zł/godz."
}
