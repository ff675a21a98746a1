package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tubebenders/backend/internal/domain"
)

func TestFilter(t *testing.T) {
	products := catalog()

	tests := []struct {
		name    string
		filters Filters
		want    []int
	}{
		{"no filters", Filters{}, []int{1, 2, 3, 4, 5}},
		{"max price", Filters{MaxPrice: 1000}, []int{1, 2, 5}},
		{"max price uses starting price of a range", Filters{MaxPrice: 3200}, []int{1, 2, 3, 4, 5}},
		{"country equality is case insensitive", Filters{Country: "usa"}, []int{2, 3}},
		{"usa only accepts both spellings", Filters{USAOnly: true}, []int{2, 3, 4}},
		{"search features", Filters{Search: "square"}, []int{3}},
		{"search name", Filters{Search: "baileigh"}, []int{4}},
		{"budget bucket", Filters{PriceCategory: PriceCategoryBudget}, []int{1, 2, 5}},
		{"mid-range bucket", Filters{PriceCategory: PriceCategoryMid}, []int{3}},
		{"premium bucket", Filters{PriceCategory: PriceCategoryPremium}, []int{4}},
		{"hydraulic from feature text", Filters{PowerType: PowerTypeHydraulic}, []int{2, 4}},
		{"manual", Filters{PowerType: PowerTypeManual}, []int{1, 3, 5}},
		{"category", Filters{Category: "Professional"}, []int{4}},
		{"filters combine with AND", Filters{USAOnly: true, MaxPrice: 1000}, []int{2}},
		{"empty result is valid", Filters{USAOnly: true, MaxPrice: 100}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(products, tt.filters)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_USAOnlyProperty(t *testing.T) {
	for _, p := range Filter(catalog(), Filters{USAOnly: true}) {
		assert.Contains(t, []string{"USA", "United States"}, p.Country)
	}
}

func TestFilter_UnparseablePriceTreatedAsZero(t *testing.T) {
	products := []domain.Product{{ID: 9, PriceRange: "Call for price"}}
	assert.Equal(t, []int{9}, ids(Filter(products, Filters{MaxPrice: 500})))
	assert.Equal(t, PriceCategoryBudget, PriceCategory(&products[0]))
}

func TestFilterAndRank(t *testing.T) {
	scored := FilterAndRank(catalog(), Filters{USAOnly: true})

	assert.Len(t, scored, 3)
	for i, sp := range scored {
		assert.Equal(t, i+1, sp.Rank)
	}
	assert.Empty(t, FilterAndRank(catalog(), Filters{Search: "no such thing"}))
}
