package listing

import (
	"math"
	"strings"
	"unicode/utf8"

	"catalog-service/internal/core/domain"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	PriceOnRequestLabel = "Sob consulta"
	rentSuffix          = "/mês"
)

var currencySymbols = map[string]string{
	"BRL": "R$",
	"USD": "US$",
	"EUR": "€",
}

// PriceFormatter renders prices as locale-aware currency with no decimals.
type PriceFormatter struct {
	tag    language.Tag
	symbol string
}

func NewPriceFormatter(tag language.Tag, unit currency.Unit) *PriceFormatter {
	symbol, ok := currencySymbols[unit.String()]
	if !ok {
		symbol = unit.String()
	}
	return &PriceFormatter{tag: tag, symbol: symbol}
}

// DefaultPriceFormatter formats Brazilian reais.
func DefaultPriceFormatter() *PriceFormatter {
	return NewPriceFormatter(language.BrazilianPortuguese, currency.BRL)
}

// Format returns the price label. A zero (or invalid) price renders as the
// price-on-request label and reports onRequest=true.
func (f *PriceFormatter) Format(price float64, tt domain.TransactionType) (label string, onRequest bool) {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return PriceOnRequestLabel, true
	}

	label = f.symbol + " " + wholeNumber(message.NewPrinter(f.tag), price)
	if tt == domain.TransactionRent {
		label += rentSuffix
	}
	return label, false
}

// FormatArea renders "120 m²", keeping one decimal for fractional areas.
func (f *PriceFormatter) FormatArea(area float64) string {
	p := message.NewPrinter(f.tag)
	if area == math.Trunc(area) {
		return wholeNumber(p, area) + " m²"
	}
	return p.Sprintf("%.1f m²", area)
}

// wholeNumber rounds v and groups its digits. Values outside the int64 range
// are printed as floats instead of wrapping around.
func wholeNumber(p *message.Printer, v float64) string {
	r := math.Round(v)
	if r >= math.MaxInt64 || r <= math.MinInt64 {
		return p.Sprintf("%.0f", r)
	}
	return p.Sprintf("%d", int64(r))
}

// TruncateDescription cuts s to limit runes and appends "...". Cuts happen on
// rune boundaries only.
func TruncateDescription(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimRightFunc(string(runes[:limit]), isSpace) + "..."
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
