package utils

import (
	"strings"
	"sync"
	"unicode"

	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// genericPrecision is used for codes missing from the reference list.
const genericPrecision = 2

// FormatCurrency renders an amount for display in the given currency.
// Example: 1234.5 USD returns "$1,234.50"
// Example: 1234.5 EUR returns "1.234,50 €"
// Example: 5 ZZZ (not in the reference list) returns "5.00 ZZZ"
// It never fails; unknown codes degrade to a grouped number followed by the code.
func FormatCurrency(amount decimal.Decimal, code string) string {
	currency, ok := domain.FindCurrency(code)
	if !ok {
		digits := formatDigits(amount.Abs(), genericPrecision, language.AmericanEnglish)
		label := strings.TrimSpace(code)
		out := digits
		if label != "" {
			out = digits + " " + label
		}
		return sign(amount, genericPrecision) + out
	}

	tag, err := language.Parse(currency.Locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	digits := formatDigits(amount.Abs(), currency.Precision, tag)
	if currency.SymbolAfter {
		return sign(amount, currency.Precision) + digits + " " + currency.Symbol
	}
	return sign(amount, currency.Precision) + currency.Symbol + digits
}

// FormatCurrencyFloat is FormatCurrency for callers holding a float64.
func FormatCurrencyFloat(amount float64, code string) string {
	return FormatCurrency(decimal.NewFromFloat(amount), code)
}

// formatDigits groups the exact decimal digits of abs with the separators
// of tag. The digits never pass through float64.
func formatDigits(abs decimal.Decimal, precision int, tag language.Tag) string {
	symbols := localeSymbols(tag)
	intPart, fracPart, _ := strings.Cut(abs.StringFixed(int32(precision)), ".")

	out := groupDigits(intPart, symbols)
	if fracPart != "" {
		out += symbols.decimal + fracPart
	}
	return out
}

// numberSymbols describes how a locale writes numbers.
type numberSymbols struct {
	group     string
	decimal   string
	primary   int // size of the rightmost integer group
	secondary int // size of the groups to its left
}

var (
	symbolsMu    sync.Mutex
	symbolsCache = map[language.Tag]numberSymbols{}
)

// localeSymbols reads the separators and group sizes of tag from the way
// x/text prints a sample number such as "1,234,567.5" or "12,34,567.5".
func localeSymbols(tag language.Tag) numberSymbols {
	symbolsMu.Lock()
	defer symbolsMu.Unlock()
	if s, ok := symbolsCache[tag]; ok {
		return s
	}

	sample := message.NewPrinter(tag).Sprintf("%v", number.Decimal(1234567.5, number.Scale(1)))

	var digitRuns, sepRuns []string
	var cur strings.Builder
	inDigits := true
	for _, r := range sample {
		if unicode.IsDigit(r) != inDigits {
			if inDigits {
				digitRuns = append(digitRuns, cur.String())
			} else {
				sepRuns = append(sepRuns, cur.String())
			}
			cur.Reset()
			inDigits = !inDigits
		}
		cur.WriteRune(r)
	}
	if inDigits {
		digitRuns = append(digitRuns, cur.String())
	}

	s := numberSymbols{decimal: "."}
	if len(sepRuns) > 0 && len(digitRuns) == len(sepRuns)+1 {
		s.decimal = sepRuns[len(sepRuns)-1]
		intRuns := digitRuns[:len(digitRuns)-1]
		if len(intRuns) > 1 {
			s.group = sepRuns[0]
			s.primary = len(intRuns[len(intRuns)-1])
			s.secondary = s.primary
			if len(intRuns) > 2 {
				s.secondary = len(intRuns[len(intRuns)-2])
			}
		}
	}
	symbolsCache[tag] = s
	return s
}

func groupDigits(digits string, s numberSymbols) string {
	if s.primary <= 0 || len(digits) <= s.primary {
		return digits
	}
	head, tail := digits[:len(digits)-s.primary], digits[len(digits)-s.primary:]
	groups := []string{tail}
	for len(head) > s.secondary {
		groups = append([]string{head[len(head)-s.secondary:]}, groups...)
		head = head[:len(head)-s.secondary]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, s.group)
}

// sign returns "-" only when the amount stays negative after rounding, so
// -0.001 renders as "$0.00" rather than "-$0.00".
func sign(amount decimal.Decimal, precision int) string {
	if amount.Round(int32(precision)).IsNegative() {
		return "-"
	}
	return ""
}
