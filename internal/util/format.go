package util

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatMoney formats an amount in rupees with thousand separators.
func FormatMoney(amount int64) string {
	return fmt.Sprintf("₹%s", humanize.Comma(amount))
}

// FormatLakh renders an amount in lakh/crore notation for notifications
// and logs, e.g. 12500000 -> "1.25 Cr", 350000 -> "3.50 L".
func FormatLakh(amount int64) string {
	const (
		lakh  = 100_000
		crore = 100 * lakh
	)

	switch {
	case amount >= crore:
		return fmt.Sprintf("%.2f Cr", float64(amount)/float64(crore))
	case amount >= lakh:
		return fmt.Sprintf("%.2f L", float64(amount)/float64(lakh))
	default:
		return FormatMoney(amount)
	}
}
