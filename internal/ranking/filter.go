package ranking

import (
	"strings"

	"github.com/tubebenders/backend/internal/domain"
	"github.com/tubebenders/backend/internal/scoring"
)

// Price category buckets, keyed on starting price
const (
	PriceCategoryBudget  = "budget"
	PriceCategoryMid     = "mid-range"
	PriceCategoryPremium = "premium"

	budgetCeiling = 1000.0
	midCeiling    = 2500.0
)

// Power type classifications
const (
	PowerTypeHydraulic = "hydraulic"
	PowerTypeManual    = "manual"
)

// Filters are simple listing predicates. Zero values are inactive.
type Filters struct {
	MaxPrice      float64 `form:"maxPrice" binding:"gte=0,lte=1000000"`
	Country       string  `form:"country"`
	USAOnly       bool    `form:"usaOnly"`
	Search        string  `form:"search"`
	PriceCategory string  `form:"priceCategory" binding:"omitempty,oneof=budget mid-range premium"`
	PowerType     string  `form:"powerType" binding:"omitempty,oneof=hydraulic manual"`
	Category      string  `form:"category"`
}

// Filter returns the products that satisfy every active filter
func Filter(products []domain.Product, f Filters) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for i := range products {
		if f.matches(&products[i]) {
			out = append(out, products[i])
		}
	}
	return out
}

// FilterAndRank applies the filters and ranks the survivors
func FilterAndRank(products []domain.Product, f Filters) []domain.ScoredProduct {
	return RankScored(Filter(products, f))
}

func (f Filters) matches(p *domain.Product) bool {
	if f.MaxPrice > 0 && scoring.StartingPrice(p) > f.MaxPrice {
		return false
	}
	if f.Country != "" && !strings.EqualFold(strings.TrimSpace(p.Country), strings.TrimSpace(f.Country)) {
		return false
	}
	if f.USAOnly && !IsUSA(p) {
		return false
	}
	if f.Search != "" && !matchesSearch(p, f.Search) {
		return false
	}
	if f.PriceCategory != "" && PriceCategory(p) != strings.ToLower(f.PriceCategory) {
		return false
	}
	if f.PowerType != "" && PowerType(p) != strings.ToLower(f.PowerType) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	return true
}

// IsUSA reports whether the product is made in the United States
func IsUSA(p *domain.Product) bool {
	return p.Country == "USA" || p.Country == "United States"
}

// PriceCategory buckets a product by its starting price
func PriceCategory(p *domain.Product) string {
	price := scoring.StartingPrice(p)
	switch {
	case price < budgetCeiling:
		return PriceCategoryBudget
	case price < midCeiling:
		return PriceCategoryMid
	default:
		return PriceCategoryPremium
	}
}

// PowerType classifies a product as hydraulic when its power type or any
// feature mentions hydraulics, otherwise manual.
func PowerType(p *domain.Product) string {
	if strings.Contains(strings.ToLower(p.PowerType), PowerTypeHydraulic) {
		return PowerTypeHydraulic
	}
	for _, feature := range p.Features {
		if strings.Contains(strings.ToLower(feature), PowerTypeHydraulic) {
			return PowerTypeHydraulic
		}
	}
	return PowerTypeManual
}

func matchesSearch(p *domain.Product, search string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	for _, feature := range p.Features {
		if strings.Contains(strings.ToLower(feature), needle) {
			return true
		}
	}
	for _, field := range []string{p.Name, p.Brand, p.Model} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
