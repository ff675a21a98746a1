package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tubebenders/backend/internal/domain"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain dollars", "$780", 780},
		{"thousands separator", "$1,895", 1895},
		{"range takes the low end", "$1,895 - $2,695", 1895},
		{"no currency symbol", "2695", 2695},
		{"cents", "$1,095.50", 1095.50},
		{"leading text", "From $885", 885},
		{"empty", "", 0},
		{"no digits", "Call for price", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParsePrice(tt.input), 0.001)
		})
	}
}

func TestParsePriceRange(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLow  float64
		wantHigh float64
	}{
		{"range", "$1,895 - $2,695", 1895, 2695},
		{"single price", "$780", 780, 780},
		{"reversed", "$2,695 - $1,895", 1895, 2695},
		{"garbage", "TBD", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			low, high := ParsePriceRange(tt.input)
			assert.InDelta(t, tt.wantLow, low, 0.001)
			assert.InDelta(t, tt.wantHigh, high, 0.001)
		})
	}
}

func TestStartingPrice(t *testing.T) {
	t.Run("prefers structured minimum", func(t *testing.T) {
		p := &domain.Product{PriceRange: "$1,895 - $2,695", PriceMin: floatPtr(1795)}
		assert.Equal(t, 1795.0, StartingPrice(p))
	})

	t.Run("falls back to display string", func(t *testing.T) {
		p := &domain.Product{PriceRange: "$1,895 - $2,695"}
		assert.Equal(t, 1895.0, StartingPrice(p))
	})

	t.Run("ignores zero minimum", func(t *testing.T) {
		p := &domain.Product{PriceRange: "$885", PriceMin: floatPtr(0)}
		assert.Equal(t, 885.0, StartingPrice(p))
	})

	t.Run("nothing parseable", func(t *testing.T) {
		assert.Equal(t, 0.0, StartingPrice(&domain.Product{}))
	})
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$780", FormatPrice(780))
	assert.Equal(t, "$1,895", FormatPrice(1895))
	assert.Equal(t, "$12,500", FormatPrice(12499.6))
	assert.Equal(t, "$0", FormatPrice(-5))
	assert.Equal(t, "$1,000,000,000,000", FormatPrice(1e20))
	assert.NotContains(t, FormatPrice(1e300), "-")
}

func TestParseDiameter(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{`2-3/8"`, 2.375},
		{`2"`, 2},
		{`2.5"`, 2.5},
		{`1-1/2" OD`, 1.5},
		{`1 3/4 inch`, 1.75},
		{`3/4"`, 0.75},
		{`1.75 in`, 1.75},
		{`Up to 3" round tube`, 3},
		{``, 0},
		{`N/A`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseDiameter(tt.input), 0.0001)
		})
	}
}

func TestParseWallThickness(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"0.120", 0.120, true},
		{".156", 0.156, true},
		{` 0.095" `, 0.095, true},
		{"", 0, false},
		{"unknown", 0, false},
		{"0", 0, false},
		{`1/8"`, 0.125, true},
		{"3/16 in", 0.1875, true},
		{"0.120 inches", 0.120, true},
		{"14 gauge", 0, false},
		{"11ga", 0, false},
		{"14", 0, false},
		{"2 mm", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseWallThickness(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestContainsToken(t *testing.T) {
	assert.True(t, containsToken(`2"`, `2"`))
	assert.True(t, containsToken(`Max 2" OD`, `2"`))
	assert.False(t, containsToken(`1-1/2"`, `2"`))
	assert.False(t, containsToken(`12"`, `2"`))
	assert.True(t, containsToken(`2-3/8"`, "2-3/8"))
	assert.False(t, containsToken(`12.5"`, "2.5"))
	assert.False(t, containsToken("", "2.5"))
}

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }
