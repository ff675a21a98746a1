package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tubebenders/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	// Matches "1,895", "780", "1895.50"
	priceNumberRegex = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

	// Mixed fraction, plain fraction, then decimal: "2-3/8", "3/4", "1.75"
	diameterRegex = regexp.MustCompile(`(\d+)[\s-]+(\d+)/(\d+)|(\d+)/(\d+)|(\d+(?:\.\d+)?)`)

	// Whole value in inches: "0.120", ".120\"", "1/8 in". Gauge sizes never match.
	wallRegex = regexp.MustCompile(`(?i)^(?:(\d+)/(\d+)|(\d*\.\d+|\d+))\s*(?:"|in\.?|inch(?:es)?)?$`)
)

// maxFormattedPrice caps FormatPrice so the int64 conversion cannot overflow
const maxFormattedPrice = 1e12

var pricePrinter = message.NewPrinter(language.English)

// ParsePrice returns the first number in a display price such as "$1,895 - $2,695".
// Currency symbols, spaces and thousands separators are ignored. Unparseable input yields 0.
func ParsePrice(s string) float64 {
	match := priceNumberRegex.FindString(s)
	if match == "" {
		return 0
	}
	return parseNumber(match)
}

// ParsePriceRange returns both ends of a price range string.
// A single price is returned as both min and max.
func ParsePriceRange(s string) (float64, float64) {
	matches := priceNumberRegex.FindAllString(s, -1)
	if len(matches) == 0 {
		return 0, 0
	}
	low := parseNumber(matches[0])
	high := parseNumber(matches[len(matches)-1])
	if high < low {
		low, high = high, low
	}
	return low, high
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// StartingPrice is the lowest price a product can be bought for.
// The structured minimum wins over the display string.
func StartingPrice(p *domain.Product) float64 {
	if p.PriceMin != nil && *p.PriceMin > 0 {
		return *p.PriceMin
	}
	return ParsePrice(p.PriceRange)
}

// FormatPrice renders whole dollars with thousands separators, e.g. "$1,895"
func FormatPrice(v float64) string {
	switch {
	case math.IsNaN(v) || v < 0:
		v = 0
	case v > maxFormattedPrice:
		v = maxFormattedPrice
	}
	return pricePrinter.Sprintf("$%d", int64(math.Round(v)))
}

// priceLabel is the string the value ladder is matched against
func priceLabel(p *domain.Product) string {
	if p.PriceRange != "" {
		return p.PriceRange
	}
	if p.PriceMin != nil && *p.PriceMin > 0 {
		return FormatPrice(*p.PriceMin)
	}
	return ""
}

// ParseDiameter converts a capacity string such as `2-3/8"` or `1.75 in` to inches.
// Returns 0 when no number can be found.
func ParseDiameter(s string) float64 {
	m := diameterRegex.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	switch {
	case m[1] != "":
		whole, _ := strconv.ParseFloat(m[1], 64)
		return whole + fraction(m[2], m[3])
	case m[4] != "":
		return fraction(m[4], m[5])
	default:
		v, _ := strconv.ParseFloat(m[6], 64)
		return v
	}
}

func fraction(num, den string) float64 {
	n, _ := strconv.ParseFloat(num, 64)
	d, _ := strconv.ParseFloat(den, 64)
	if d == 0 {
		return 0
	}
	return n / d
}

// ParseWallThickness parses a wall thickness in inches, written as a decimal
// or a plain fraction with an optional inch unit. The bool is false when the
// value is absent, a gauge size such as "14 gauge", or not under one inch.
func ParseWallThickness(s string) (float64, bool) {
	m := wallRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}

	var v float64
	if m[1] != "" {
		v = fraction(m[1], m[2])
	} else {
		v, _ = strconv.ParseFloat(m[3], 64)
	}
	// bare whole numbers are gauge sizes with the suffix dropped
	if v <= 0 || v >= 1 {
		return 0, false
	}
	return v, true
}

// containsToken reports whether token occurs in s at the start of a number,
// so that "2\"" does not match inside "1-1/2\"".
func containsToken(s, token string) bool {
	for from := 0; from <= len(s)-len(token); {
		idx := strings.Index(s[from:], token)
		if idx < 0 {
			return false
		}
		pos := from + idx
		if pos == 0 || !isNumberChar(s[pos-1]) {
			return true
		}
		from = pos + 1
	}
	return false
}

func isNumberChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '/'
}
