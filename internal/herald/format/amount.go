package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var fiatSymbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
	"jpy": "¥",
}

type tier struct {
	below  decimal.Decimal
	div    decimal.Decimal
	suffix string
}

var xecTiers = []tier{
	{below: decimal.New(1, 6), div: decimal.New(1, 3), suffix: "k"},
	{below: decimal.New(1, 9), div: decimal.New(1, 6), suffix: "M"},
	{below: decimal.New(1, 12), div: decimal.New(1, 9), suffix: "B"},
}

// XEC renders sats as XEC: 5.46 XEC, 546 XEC, 12k XEC, 3M XEC.
func XEC(sats int64) string {
	xec := decimal.New(sats, -2)
	switch {
	case xec.LessThan(decimal.NewFromInt(10)):
		return Group(xec.Round(2).String()) + " XEC"
	case xec.LessThan(decimal.NewFromInt(1000)):
		return Group(xec.Round(0).String()) + " XEC"
	}
	for _, t := range xecTiers {
		if xec.LessThan(t.below) {
			return Group(xec.Div(t.div).Round(0).String()) + t.suffix + " XEC"
		}
	}
	return Group(xec.Div(decimal.New(1, 12)).Round(0).String()) + "T XEC"
}

// Value renders sats in fiat when an XEC price is known, in XEC otherwise.
func Value(sats int64, xecPrice float64, fiat string) string {
	if xecPrice <= 0 {
		return XEC(sats)
	}
	amount := decimal.New(sats, -2).Mul(decimal.NewFromFloat(xecPrice))
	symbol := fiatSymbols[strings.ToLower(fiat)]

	var out string
	switch f, _ := amount.Float64(); {
	case amount.IsZero():
		out = "0"
	case f < 0.01:
		digits := int32(-math.Floor(math.Log10(f)))
		out = amount.Round(digits).StringFixed(digits)
	case f < 1:
		out = amount.StringFixed(2)
	case f < 1000:
		out = Group(amount.Round(0).String())
	case f < 1e6:
		out = Group(amount.Div(decimal.New(1, 3)).Round(2).String()) + "k"
	case f < 1e9:
		out = Group(amount.Div(decimal.New(1, 6)).Round(2).String()) + "M"
	default:
		out = Group(amount.Div(decimal.New(1, 9)).Round(2).String()) + "B"
	}
	return symbol + out
}

// Price renders a quote: no decimals above 100, two above 1, up to eight below.
func Price(price float64, fiat string) string {
	d := decimal.NewFromFloat(price)
	symbol := fiatSymbols[strings.ToLower(fiat)]
	switch {
	case price > 100:
		return symbol + Group(d.Round(0).String())
	case price > 1:
		return symbol + Group(d.Round(2).String())
	default:
		return symbol + d.Round(8).String()
	}
}

// Group inserts thousands separators into the integer part of a decimal string.
func Group(number string) string {
	sign := ""
	if strings.HasPrefix(number, "-") {
		sign, number = "-", number[1:]
	}
	integer, fraction, hasFraction := strings.Cut(number, ".")
	if len(integer) <= 3 {
		return sign + number
	}

	var b strings.Builder
	lead := len(integer) % 3
	if lead > 0 {
		b.WriteString(integer[:lead])
	}
	for i := lead; i < len(integer); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(integer[i : i+3])
	}
	if hasFraction {
		b.WriteByte('.')
		b.WriteString(fraction)
	}
	return sign + b.String()
}

// TokenAmount groups a display amount and trims trailing fraction zeros.
func TokenAmount(display string) string {
	if strings.Contains(display, ".") {
		display = strings.TrimRight(strings.TrimRight(display, "0"), ".")
	}
	return Group(display)
}
