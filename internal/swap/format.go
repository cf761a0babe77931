package swap

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// numericPrefix matches the longest leading decimal literal, the way
// browser parseFloat does ("12abc" -> 12, "abc" -> NaN).
var numericPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// ParseAmount parses a user-entered amount. Input without a numeric prefix
// yields NaN, which then propagates through every calculation.
func ParseAmount(s string) float64 {
	m := numericPrefix.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return math.NaN()
	}

	if strings.HasSuffix(m, "Infinity") {
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	v, err := strconv.ParseFloat(m, 64)
	// ErrRange still carries ±Inf or 0, matching float overflow semantics.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}

// nonFinite renders NaN and infinities, reporting false for finite values.
func nonFinite(v float64, inf string) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NaN", true
	case math.IsInf(v, 1):
		return inf, true
	case math.IsInf(v, -1):
		return "-" + inf, true
	}
	return "", false
}

// exactDigits is enough fraction digits to write any finite float64 exactly
// (the smallest subnormal has 1074).
const exactDigits = 1100

// exactDecimal returns the exact value of the binary double v, not its
// shortest round-trip form: 1.005 is 1.00499999999999989...
func exactDecimal(v float64) decimal.Decimal {
	return decimal.RequireFromString(new(big.Float).SetFloat64(v).Text('f', exactDigits))
}

// ToFixed renders v with exactly digits fraction digits, rounding the exact
// binary value half away from zero. Negative values that round to zero keep
// their sign ("-0.00").
func ToFixed(v float64, digits int32) string {
	if s, ok := nonFinite(v, "Infinity"); ok {
		return s
	}
	s := exactDecimal(v).StringFixed(digits)
	if v < 0 && !strings.HasPrefix(s, "-") {
		s = "-" + s
	}
	return s
}

// Grouped renders v rounded to an integer with thousands separators.
func Grouped(v float64) string {
	if s, ok := nonFinite(v, "∞"); ok {
		return s
	}
	return humanize.BigComma(exactDecimal(v).Round(0).BigInt())
}

// Convert derives the receive amount from a send amount. Empty input stays
// empty; anything else is multiplied (forward) or divided (reversed) by Rate.
func Convert(amount string, dir Direction) string {
	if amount == "" {
		return ""
	}

	v := ParseAmount(amount)
	if dir.SendsBase() {
		return ToFixed(v*Rate, QuoteDigits)
	}
	return ToFixed(v/Rate, BaseDigits)
}

// FormatAmount renders an amount for display: 8 fraction digits for the base
// token, grouped integer for the quote token. Empty renders as "0".
func FormatAmount(amount string, isBase bool) string {
	if amount == "" {
		return "0"
	}

	v := ParseAmount(amount)
	if isBase {
		return ToFixed(v, BaseDigits)
	}
	return Grouped(v)
}

// USDEstimate renders the decorative dollar value of amount at token's price.
func USDEstimate(amount string, token Token) string {
	if amount == "" {
		return "$0.00"
	}
	return "$" + ToFixed(ParseAmount(amount)*token.USDPrice, 2)
}

// RateLine renders the static conversion line for the current direction.
func RateLine(p Pair, dir Direction) string {
	if dir.SendsBase() {
		return "1 " + p.Base.Symbol + " ≈ " + Grouped(Rate) + " " + p.Quote.Symbol
	}
	return "1 " + p.Quote.Symbol + " ≈ " + ToFixed(1.0/Rate, BaseDigits) + " " + p.Base.Symbol
}
