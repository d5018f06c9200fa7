package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
)

func TestTotal(t *testing.T) {
	// A $10.00 x2 + B $20.00 x1 = $40.00
	items := []*Item{
		{Quantity: 2, Product: &product.Product{Price: 1000}},
		{Quantity: 1, Product: &product.Product{Price: 2000}},
	}
	assert.Equal(t, int64(4000), Total(items))

	// 变更后重算
	items[0].Quantity = 3
	assert.Equal(t, int64(5000), Total(items))

	assert.Zero(t, Total(nil))
}

func TestSubtotalMissingProduct(t *testing.T) {
	i := &Item{Quantity: 5}
	assert.Zero(t, i.Subtotal())
}
