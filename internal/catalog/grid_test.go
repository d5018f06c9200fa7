package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShopLayoutColumns(t *testing.T) {
	assert.Equal(t, 2, Shop2x2.Columns())
	assert.Equal(t, 3, Shop3x3.Columns())
	assert.Equal(t, 5, Shop5x5.Columns())
}

func TestCategoryLayoutColumns(t *testing.T) {
	assert.Equal(t, 2, Category2x2.Columns())
	assert.Equal(t, 6, Category6x6.Columns())
	assert.Equal(t, 10, Category10x10.Columns())
}

func TestLayoutOutsideFamilyPanics(t *testing.T) {
	assert.Panics(t, func() { ShopLayout("10x10").Columns() })
	assert.Panics(t, func() { CategoryLayout("3x3").Columns() })
	assert.Panics(t, func() { ShopLayout("").Columns() })
}
