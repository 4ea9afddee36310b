package catalog

import (
	"testing"

	"meraki/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []models.Product {
	return []models.Product{
		{ID: 1, Title: "Silk Scarf", Description: "Hand-rolled silk", Price: 2500, Category: "Accessories", Subcategory: "Scarves", Tags: []string{"silk", "gift"}},
		{ID: 2, Title: "Leather Belt", Description: "Full-grain leather", Price: 1800, Category: "Accessories", Subcategory: "Belts", Tags: []string{"leather"}},
		{ID: 3, Title: "Cashmere Sweater", Description: "Two-ply cashmere", Price: 8900, Category: "Apparel", Subcategory: "Knitwear", Tags: []string{"cashmere", "winter"}},
		{ID: 4, Title: "Aviator Sunglasses", Description: "Polarized lenses", Price: 2500, Category: "Accessories", Subcategory: "Eyewear", Tags: []string{"summer"}},
	}
}

func TestFilterZeroValuePreservesOrder(t *testing.T) {
	products := testCatalog()

	got := Filter{}.Apply(products)

	require.Len(t, got, 4)
	for i, p := range products {
		assert.Equal(t, p.ID, got[i].ID)
	}
}

func TestFilterCategory(t *testing.T) {
	got := Filter{Category: "Apparel"}.Apply(testCatalog())
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)

	got = Filter{Category: AllCategories}.Apply(testCatalog())
	assert.Len(t, got, 4)
}

func TestFilterSubcategory(t *testing.T) {
	got := Filter{Category: "Accessories", Subcategory: "Belts"}.Apply(testCatalog())
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	got := Filter{SearchTerm: "LEATHER"}.Apply(testCatalog())
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestFilterSearchMatchesTags(t *testing.T) {
	got := Filter{SearchTerm: "winter"}.Apply(testCatalog())
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
}

func TestFilterUnmatchedYieldsEmptySlice(t *testing.T) {
	got := Filter{SearchTerm: "no such product"}.Apply(testCatalog())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterSortPrice(t *testing.T) {
	asc := Filter{Sort: SortPriceAsc}.Apply(testCatalog())
	require.Len(t, asc, 4)
	assert.Equal(t, []int64{2, 1, 4, 3}, ids(asc))

	desc := Filter{Sort: SortPriceDesc}.Apply(testCatalog())
	assert.Equal(t, []int64{3, 1, 4, 2}, ids(desc))
}

func TestFilterSortIsStableOnTies(t *testing.T) {
	// products 1 and 4 share a price; catalog order must survive the sort
	got := Filter{Sort: SortPriceAsc}.Apply(testCatalog())
	require.Len(t, got, 4)
	assert.Equal(t, int64(1), got[1].ID)
	assert.Equal(t, int64(4), got[2].ID)
}

func TestFilterSortTitle(t *testing.T) {
	got := Filter{Sort: SortTitle}.Apply(testCatalog())
	assert.Equal(t, []int64{4, 3, 2, 1}, ids(got))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	products := testCatalog()

	Filter{Sort: SortPriceDesc}.Apply(products)

	for i, p := range testCatalog() {
		assert.Equal(t, p.ID, products[i].ID)
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	f := Filter{Category: "Accessories", Sort: SortPriceAsc}

	once := f.Apply(testCatalog())
	twice := f.Apply(once)

	assert.Equal(t, once, twice)
}

func ids(products []models.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
