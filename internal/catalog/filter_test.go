package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
)

func sampleProducts() []*product.Product {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	return []*product.Product{
		{ID: 1, Name: "Oversized Cotton T-Shirt", Price: 2999, Category: product.CategoryMan, CreatedAt: base},
		{ID: 2, Name: "Pleated Midi Skirt", Price: 4999, Category: product.CategoryWoman, CreatedAt: base.Add(24 * time.Hour)},
		{ID: 3, Name: "Leather Chelsea Boots", Price: 12999, Category: product.CategoryShoes, CreatedAt: base.Add(48 * time.Hour)},
		{ID: 4, Name: "Kids Denim Jacket", Price: 3999, Category: product.CategoryKid, CreatedAt: base.Add(72 * time.Hour)},
		{ID: 5, Name: "Wool Scarf", Price: 1999, Category: product.CategoryAccessories, CreatedAt: base.Add(96 * time.Hour)},
	}
}

func ids(list []*product.Product) []int64 {
	out := make([]int64, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterByCategoryAllIsIdentity(t *testing.T) {
	list := sampleProducts()

	assert.Equal(t, list, FilterByCategory(list, "all"))
	assert.Equal(t, list, FilterByCategory(list, "ALL"))
	assert.Equal(t, list, FilterByCategory(list, ""))
}

func TestFilterByCategoryGroupMapping(t *testing.T) {
	list := sampleProducts()

	tests := []struct {
		name     string
		selected string
		want     []int64
	}{
		{"clothing expands to man and woman", "clothing", []int64{1, 2}},
		{"shirts shares the clothing group", "shirts", []int64{1, 2}},
		{"kids maps to KID", "kids", []int64{4}},
		{"shoes is a singleton group", "shoes", []int64{3}},
		{"accessories is a singleton group", "accessories", []int64{5}},
		{"backend code passes through", "WOMAN", []int64{2}},
		{"unknown category yields empty, not error", "furniture", []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterByCategory(list, tt.selected)))
		})
	}
}

func TestFilterByPriceClosedBounds(t *testing.T) {
	list := sampleProducts()

	got := FilterByPrice(list, 1999, 4999)
	assert.Equal(t, []int64{1, 2, 4, 5}, ids(got), "both bounds are inclusive")

	// 边界恰好命中
	exact := FilterByPrice(list, 12999, 12999)
	assert.Equal(t, []int64{3}, ids(exact))
}

func TestFilterByPricePreservesOrder(t *testing.T) {
	list := sampleProducts()
	got := FilterByPrice(list, 0, DefaultPriceMax)

	require.Len(t, got, len(list))
	assert.Equal(t, ids(list), ids(got))
}

func TestFilterByPriceInvertedRangeYieldsEmpty(t *testing.T) {
	got := FilterByPrice(sampleProducts(), 5000, 1000)
	assert.Empty(t, got)
}

func TestFilterStatePipeline(t *testing.T) {
	list := sampleProducts()

	st := NewFilterState()
	assert.Equal(t, ids(SortProducts(list, SortNewest)), ids(st.Apply(list)), "defaults are all/newest")

	st.Category = "clothing"
	st.PriceMin = 3000
	st.PriceMax = 6000
	st.SortKey = SortPriceAsc
	assert.Equal(t, []int64{2}, ids(st.Apply(list)))
}
