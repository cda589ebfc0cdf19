package domain

import "strings"

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // ISO 4217, e.g. "USD"
	Symbol       string `json:"symbol"`       // e.g. "$"
	Name         string `json:"name"`         // e.g. "US Dollar"
	Precision    int    `json:"precision"`    // minor-unit digits
	Locale       string `json:"locale"`       // BCP 47 tag used for digit grouping
	SymbolAfter  bool   `json:"symbolAfter"`  // "1.234,50 €" instead of "€1,234.50"
}

// Currencies is the fixed reference list offered to users, in display order.
var Currencies = []Currency{
	{CurrencyCode: "USD", Symbol: "$", Name: "United States Dollar", Precision: 2, Locale: "en-US"},
	{CurrencyCode: "EUR", Symbol: "€", Name: "Euro", Precision: 2, Locale: "de-DE", SymbolAfter: true},
	{CurrencyCode: "GBP", Symbol: "£", Name: "British Pound Sterling", Precision: 2, Locale: "en-GB"},
	{CurrencyCode: "INR", Symbol: "₹", Name: "Indian Rupee", Precision: 2, Locale: "en-IN"},
	{CurrencyCode: "JPY", Symbol: "¥", Name: "Japanese Yen", Precision: 0, Locale: "ja-JP"},
	{CurrencyCode: "CAD", Symbol: "CA$", Name: "Canadian Dollar", Precision: 2, Locale: "en-CA"},
	{CurrencyCode: "AUD", Symbol: "A$", Name: "Australian Dollar", Precision: 2, Locale: "en-AU"},
	{CurrencyCode: "CHF", Symbol: "CHF ", Name: "Swiss Franc", Precision: 2, Locale: "de-CH"},
	{CurrencyCode: "CNY", Symbol: "CN¥", Name: "Chinese Yuan", Precision: 2, Locale: "zh-CN"},
	{CurrencyCode: "SEK", Symbol: "kr", Name: "Swedish Krona", Precision: 2, Locale: "sv-SE", SymbolAfter: true},
	{CurrencyCode: "NZD", Symbol: "NZ$", Name: "New Zealand Dollar", Precision: 2, Locale: "en-NZ"},
}

// FindCurrency looks up a reference currency by code, ignoring case.
func FindCurrency(code string) (Currency, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range Currencies {
		if c.CurrencyCode == code {
			return c, true
		}
	}
	return Currency{}, false
}
