package internal

import (
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency formats amounts for the console table. Datev output never goes through here.
type Currency struct {
	Code    string // "EUR", "CHF", "USD"
	unit    currency.Unit
	known   bool
	tag     language.Tag
	printer *message.Printer
}

// defaultLocaleForCurrency is the "home" locale used when the system locale is unknown.
// Datev exports are mostly EUR, so German is the final fallback.
var defaultLocaleForCurrency = map[string]language.Tag{
	"EUR": language.German,
	"CHF": language.MustParse("de-CH"),
	"USD": language.AmericanEnglish,
	"GBP": language.BritishEnglish,
	"SEK": language.Swedish,
	"DKK": language.Danish,
	"NOK": language.Norwegian,
	"PLN": language.Polish,
	"CZK": language.Czech,
	"HUF": language.Hungarian,
	"JPY": language.Japanese,
}

// symbolOverrides provides custom symbols where x/text defaults aren't ideal
var symbolOverrides = map[string]string{
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
}

// detectedLocale stores the system locale when auto-detected, so we can use it for formatting
var detectedLocale language.Tag

// GetCurrency returns the Currency for a given code. Unknown or empty codes
// format the number only, followed by the code when one was given.
func GetCurrency(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))

	unit, err := currency.ParseISO(code)
	known := err == nil

	// Priority: detected system locale > home locale of the currency > German
	tag := language.German
	if detectedLocale != language.Und {
		tag = detectedLocale
	} else if t, ok := defaultLocaleForCurrency[code]; ok {
		tag = t
	}

	return Currency{
		Code:    code,
		unit:    unit,
		known:   known,
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

// DetectSystemLocale reads the OS locale and remembers it for later formatting.
// Returns the currency of the locale's region, or "" if nothing usable was found.
func DetectSystemLocale() string {
	locale := detectSystemLocale()
	if locale == "" {
		return ""
	}

	currCode, tag := parseCurrencyFromLocale(locale)
	if currCode != "" {
		detectedLocale = tag
	}
	return currCode
}

// localeFromEnv returns the first usable locale from the given variables.
func localeFromEnv(vars ...string) string {
	for _, envVar := range vars {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" {
			return locale
		}
	}
	return ""
}

// parseCurrencyFromLocale extracts currency code and language tag from a locale string.
// Examples: "de_DE.UTF-8" -> ("EUR", de-DE), "de_CH@euro" -> ("CHF", de-CH)
func parseCurrencyFromLocale(locale string) (string, language.Tag) {
	base := locale
	if idx := strings.IndexAny(base, ".@"); idx != -1 {
		base = base[:idx]
	}

	tag, err := language.Parse(strings.Replace(base, "_", "-", 1))
	if err != nil {
		return "", language.Und
	}

	_, _, region := tag.Raw()
	if region.String() == "" || region.String() == "ZZ" {
		return "", language.Und
	}

	unit, ok := currency.FromRegion(region)
	if !ok {
		return "", language.Und
	}

	return unit.String(), tag
}

func (c Currency) symbol() string {
	if sym, ok := symbolOverrides[c.Code]; ok {
		return sym
	}
	if !c.known {
		return c.Code
	}
	return c.printer.Sprint(currency.NarrowSymbol(c.unit))
}

// isPrefix reports whether the symbol goes before the amount.
// x/text does not expose CLDR symbol placement, so this list is maintained by hand.
func (c Currency) isPrefix() bool {
	switch c.Code {
	case "USD", "GBP", "JPY":
		return true
	default:
		return false
	}
}

// Format renders an amount with two fraction digits and the currency symbol.
func (c Currency) Format(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	formatted := c.printer.Sprint(number.Decimal(amount.InexactFloat64(),
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))

	symbol := c.symbol()
	switch {
	case symbol == "":
		return sign + formatted
	case c.isPrefix():
		return sign + symbol + formatted
	default:
		return sign + formatted + " " + symbol
	}
}

// FormatRate renders a percentage such as a VAT rate, without symbol.
func (c Currency) FormatRate(rate decimal.Decimal) string {
	if rate.IsZero() {
		return ""
	}
	return c.printer.Sprint(number.Decimal(rate.InexactFloat64(), number.MaxFractionDigits(2))) + " %"
}
