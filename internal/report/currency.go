package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spigell/hiring-slate/internal/candidate"
)

const notAvailable = "N/A"

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders an amount as whole US dollars with thousands
// separators, or N/A when absent.
func FormatCurrency(s candidate.Salary) string {
	if !s.Valid {
		return notAvailable
	}
	return FormatUSD(s.Amount)
}

func FormatUSD(amount int) string {
	if amount < 0 {
		return usd.Sprintf("-$%d", -amount)
	}
	return usd.Sprintf("$%d", amount)
}
