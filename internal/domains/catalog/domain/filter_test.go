package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/levaja/marketplace-api/internal/shared/money"
)

func catalogViews() []ProductView {
	bread := sampleProduct("1", 2)
	bread.Name = "Pão Integral Artesanal"
	bread.Tags = []string{"integral", "artesanal"}

	yogurt := sampleProduct("2", 1)
	yogurt.Name = "Iogurte Natural Orgânico"
	yogurt.Category = "Laticínios"
	yogurt.Brand = "Fazenda Feliz"
	yogurt.MarketID = "2"
	yogurt.Price = money.MustParse("4.20")
	yogurt.OriginalPrice = money.MustParse("6.50")
	yogurt.Rating = 4.8
	yogurt.Tags = []string{"orgânico"}

	banana := sampleProduct("3", 12)
	banana.Name = "Banana Prata"
	banana.Category = "Frutas"
	banana.Brand = "Sítio Bom"
	banana.Price = money.MustParse("3.90")
	banana.OriginalPrice = money.MustParse("5.50")
	banana.Rating = 4.3
	banana.Tags = []string{"orgânico", "frutas"}

	return []ProductView{
		NewProductView(bread, refNow, 0.8, false),
		NewProductView(yogurt, refNow, 1.2, true),
		NewProductView(banana, refNow, 0.8, false),
	}
}

func ids(views []ProductView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Product.ID)
	}
	return out
}

func TestFilterPredicates(t *testing.T) {
	maxPrice := money.MustParse("4.20")
	maxDistance := 1.0
	cases := []struct {
		name     string
		filter   ProductFilter
		expected []string
	}{
		{name: "category is case insensitive substring", filter: ProductFilter{Category: "latic"}, expected: []string{"2"}},
		{name: "search covers tags", filter: ProductFilter{SearchTerm: "ORGÂNICO"}, expected: []string{"2", "3"}},
		{name: "search covers brand", filter: ProductFilter{SearchTerm: "vida"}, expected: []string{"1"}},
		{name: "price ceiling is inclusive", filter: ProductFilter{MaxPrice: &maxPrice}, expected: []string{"2", "3"}},
		{name: "distance ceiling", filter: ProductFilter{MaxDistance: &maxDistance}, expected: []string{"1", "3"}},
		{name: "near expiry only", filter: ProductFilter{OnlyNearExpiry: true}, expected: []string{"1", "2"}},
		{name: "favorites only", filter: ProductFilter{OnlyFavorites: true}, expected: []string{"2"}},
		{name: "predicates combine", filter: ProductFilter{SearchTerm: "orgânico", MaxDistance: &maxDistance}, expected: []string{"3"}},
		{name: "market", filter: ProductFilter{MarketID: "2"}, expected: []string{"2"}},
		{name: "status", filter: ProductFilter{Status: StatusActive}, expected: []string{"3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := tc.filter
			require.NoError(t, f.Normalize())
			page := f.Apply(catalogViews())
			require.Equal(t, tc.expected, ids(page.Items))
			require.Equal(t, len(tc.expected), page.Total)
		})
	}
}

func TestFilterSorting(t *testing.T) {
	cases := []struct {
		by       SortField
		order    SortOrder
		expected []string
	}{
		{by: SortByPrice, expected: []string{"3", "2", "1"}},
		{by: SortByPrice, order: SortDesc, expected: []string{"1", "2", "3"}},
		{by: SortByDiscount, order: SortDesc, expected: []string{"2", "1", "3"}},
		{by: SortByExpiry, expected: []string{"2", "1", "3"}},
		{by: SortByDistance, expected: []string{"1", "3", "2"}},
		{by: SortByRating, order: SortDesc, expected: []string{"2", "1", "3"}},
		{by: SortByName, expected: []string{"3", "2", "1"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.by)+"-"+string(tc.order), func(t *testing.T) {
			f := ProductFilter{SortBy: tc.by, SortOrder: tc.order}
			require.NoError(t, f.Normalize())
			require.Equal(t, tc.expected, ids(f.Apply(catalogViews()).Items))
		})
	}
}

func TestFilterNormalizeRejectsBadInput(t *testing.T) {
	bad := []ProductFilter{
		{SortBy: "popularity"},
		{SortOrder: "sideways"},
		{Page: -1},
		{Limit: 500},
		{Status: "gone"},
	}
	for _, f := range bad {
		require.Error(t, f.Normalize())
	}

	f := ProductFilter{}
	require.NoError(t, f.Normalize())
	require.Equal(t, 1, f.Page)
	require.Equal(t, DefaultPageSize, f.Limit)
	require.Equal(t, SortAsc, f.SortOrder)
}

func TestPaginate(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}
	first := Paginate(items, 1, 20)
	require.Len(t, first.Items, 20)
	require.Equal(t, 3, first.TotalPages)
	require.True(t, first.HasMore)

	last := Paginate(items, 3, 20)
	require.Equal(t, []int{40, 41, 42, 43, 44}, last.Items)
	require.False(t, last.HasMore)

	beyond := Paginate(items, 9, 20)
	require.Empty(t, beyond.Items)
	require.Equal(t, 45, beyond.Total)

	empty := Paginate([]int{}, 1, 20)
	require.Equal(t, 0, empty.TotalPages)
	require.False(t, empty.HasMore)
}

func TestBuildSuggestions(t *testing.T) {
	var products []*Product
	for _, v := range catalogViews() {
		products = append(products, v.Product)
	}
	markets := []*Market{{ID: "1", Name: "Mercado Verde"}, {ID: "2", Name: "Supermercado Economia"}}

	suggestions := BuildSuggestions("merc", products, markets, 10)
	require.Len(t, suggestions, 2)
	require.Equal(t, "Mercado Verde", suggestions[0].Text)
	require.Equal(t, 2, suggestions[0].Count)

	require.Nil(t, BuildSuggestions("  ", products, markets, 10))
	require.Len(t, BuildSuggestions("a", products, markets, 2), 2)
}
