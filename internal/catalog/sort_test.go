package catalog

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
)

func TestSortProductsPriceAsc(t *testing.T) {
	list := sampleProducts()
	got := SortProducts(list, SortPriceAsc)

	require.Len(t, got, len(list))
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Price, got[i].Price)
	}

	// 同一组 id 的置换，不丢也不多
	want := ids(list)
	have := ids(got)
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	sort.Slice(have, func(i, j int) bool { return have[i] < have[j] })
	assert.Equal(t, want, have)
}

func TestSortProductsPriceDesc(t *testing.T) {
	got := SortProducts(sampleProducts(), SortPriceDesc)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Price, got[i].Price)
	}
}

func TestSortProductsNameAscLocaleAware(t *testing.T) {
	list := []*product.Product{
		{ID: 1, Name: "Zeta"},
		{ID: 2, Name: "alpha"},
		{ID: 3, Name: "Beta"},
	}
	got := SortProducts(list, SortNameAsc)
	assert.Equal(t, []string{"alpha", "Beta", "Zeta"}, []string{got[0].Name, got[1].Name, got[2].Name})
}

func TestSortProductsNewestDefault(t *testing.T) {
	list := sampleProducts()

	for _, key := range []string{SortNewest, "", "bogus-key"} {
		got := SortProducts(list, key)
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt), "key %q must order newest first", key)
		}
	}
}

func TestSortProductsIsStableForTies(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	list := []*product.Product{
		{ID: 10, Name: "A", Price: 1000, CreatedAt: base},
		{ID: 11, Name: "B", Price: 1000, CreatedAt: base},
		{ID: 12, Name: "C", Price: 1000, CreatedAt: base},
	}
	got := SortProducts(list, SortPriceAsc)
	assert.Equal(t, []int64{10, 11, 12}, ids(got), "equal prices keep original relative order")
}

func TestSortProductsIdempotent(t *testing.T) {
	list := sampleProducts()
	for _, key := range []string{SortPriceAsc, SortPriceDesc, SortNameAsc, SortNewest} {
		once := SortProducts(list, key)
		twice := SortProducts(once, key)
		assert.Equal(t, ids(once), ids(twice), "sorting twice by %q must not reorder", key)
	}
}

func TestSortProductsDoesNotMutateInput(t *testing.T) {
	list := sampleProducts()
	before := ids(list)
	_ = SortProducts(list, SortPriceAsc)
	assert.Equal(t, before, ids(list))
}
