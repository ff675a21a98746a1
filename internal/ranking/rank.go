// Package ranking orders and filters catalog products by objective score.
// Inputs are never modified; every function returns fresh slices.
package ranking

import (
	"slices"
	"strings"

	"github.com/tubebenders/backend/internal/domain"
	"github.com/tubebenders/backend/internal/scoring"
)

// SortOrder selects how scored listings are ordered
type SortOrder string

const (
	SortByScore     SortOrder = "score"
	SortByPriceAsc  SortOrder = "price-asc"
	SortByPriceDesc SortOrder = "price-desc"
	SortByName      SortOrder = "name"
)

// ParseSortOrder maps a query value to a SortOrder; unknown values sort by score
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortByPriceAsc:
		return SortByPriceAsc
	case SortByPriceDesc:
		return SortByPriceDesc
	case SortByName:
		return SortByName
	default:
		return SortByScore
	}
}

// Rank returns the products sorted by descending total score.
// Products with equal scores keep their input order.
func Rank(products []domain.Product) []domain.Product {
	scored := RankScored(products)
	out := make([]domain.Product, len(scored))
	for i, sp := range scored {
		out[i] = sp.Product
	}
	return out
}

// RankScored scores every product and returns them in rank order with
// their breakdowns and 1-based positions attached.
func RankScored(products []domain.Product) []domain.ScoredProduct {
	scored := make([]domain.ScoredProduct, len(products))
	for i := range products {
		p := products[i]
		scored[i] = domain.ScoredProduct{Product: p, Score: scoring.ScoreOrEstimate(&p)}
	}

	slices.SortStableFunc(scored, func(a, b domain.ScoredProduct) int {
		return b.Score.Total - a.Score.Total
	})
	assignRanks(scored)
	return scored
}

// SortScored reorders an already ranked listing. Rank numbers are kept so the
// objective position stays visible when sorting by price or name.
func SortScored(items []domain.ScoredProduct, order SortOrder) []domain.ScoredProduct {
	out := slices.Clone(items)

	switch order {
	case SortByPriceAsc:
		slices.SortStableFunc(out, func(a, b domain.ScoredProduct) int {
			return comparePrice(a, b)
		})
	case SortByPriceDesc:
		slices.SortStableFunc(out, func(a, b domain.ScoredProduct) int {
			return comparePrice(b, a)
		})
	case SortByName:
		slices.SortStableFunc(out, func(a, b domain.ScoredProduct) int {
			return strings.Compare(strings.ToLower(a.Product.Name), strings.ToLower(b.Product.Name))
		})
	default:
		slices.SortStableFunc(out, func(a, b domain.ScoredProduct) int {
			return b.Score.Total - a.Score.Total
		})
	}
	return out
}

func comparePrice(a, b domain.ScoredProduct) int {
	pa := scoring.StartingPrice(&a.Product)
	pb := scoring.StartingPrice(&b.Product)
	switch {
	case pa < pb:
		return -1
	case pa > pb:
		return 1
	default:
		return 0
	}
}

func assignRanks(items []domain.ScoredProduct) {
	for i := range items {
		items[i].Rank = i + 1
	}
}
