package utils_test

import (
	"regexp"
	"testing"

	"github.com/SscSPs/invoice_ai_app/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		code   string
		want   string
	}{
		{name: "USD groups thousands", amount: decimal.NewFromFloat(1234.5), code: "USD", want: "$1,234.50"},
		{name: "lower-case code", amount: decimal.NewFromFloat(1234.5), code: "usd", want: "$1,234.50"},
		{name: "GBP", amount: decimal.NewFromInt(1000000), code: "GBP", want: "£1,000,000.00"},
		{name: "zero", amount: decimal.Zero, code: "USD", want: "$0.00"},
		{name: "rounds half up", amount: decimal.RequireFromString("2.675"), code: "USD", want: "$2.68"},
		{name: "negative", amount: decimal.NewFromFloat(-42.1), code: "USD", want: "-$42.10"},
		{name: "tiny negative rounds to zero", amount: decimal.RequireFromString("-0.001"), code: "USD", want: "$0.00"},
		{name: "EUR places symbol after", amount: decimal.NewFromFloat(1234.5), code: "EUR", want: "1.234,50 €"},
		{name: "JPY has no minor unit", amount: decimal.NewFromFloat(1234.5), code: "JPY", want: "¥1,235"},
		{name: "unknown code", amount: decimal.NewFromInt(5), code: "ZZZ", want: "5.00 ZZZ"},
		{name: "empty code", amount: decimal.NewFromInt(5), code: "", want: "5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.FormatCurrency(tt.amount, tt.code))
		})
	}
}

func TestFormatCurrency_TwoDecimalDigits(t *testing.T) {
	got := utils.FormatCurrencyFloat(1234.5, "USD")
	assert.Regexp(t, regexp.MustCompile(`\.\d{2}$`), got)

	unknown := utils.FormatCurrencyFloat(5, "ZZZ")
	assert.Contains(t, unknown, "ZZZ")
	assert.Contains(t, unknown, "5.00")
}

func TestFormatCurrency_LargeAmountsKeepEveryDigit(t *testing.T) {
	amount := decimal.RequireFromString("99999999999999999.99")

	assert.Equal(t, "$99,999,999,999,999,999.99", utils.FormatCurrency(amount, "USD"))
	assert.Equal(t, "99.999.999.999.999.999,99 €", utils.FormatCurrency(amount, "EUR"))
	assert.Equal(t, "99,999,999,999,999,999.99 ZZZ", utils.FormatCurrency(amount, "ZZZ"))
	assert.Equal(t, "-$12,345,678,901,234,567.89", utils.FormatCurrency(decimal.RequireFromString("-12345678901234567.89"), "USD"))
}
