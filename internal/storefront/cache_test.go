package storefront

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheExpiry(t *testing.T) {
	c := NewCache(time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("products:all", []byte(`[]`))
	_, ok := c.Get("products:all")
	assert.True(t, ok)

	base = base.Add(2 * time.Minute)
	_, ok = c.Get("products:all")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestCacheInvalidatePrefix(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("cart", []byte(`{}`))
	c.Set("products:all", []byte(`[]`))
	c.Set("products:shoes", []byte(`[]`))

	c.InvalidatePrefix("products:")
	_, ok := c.Get("cart")
	assert.True(t, ok)
	_, ok = c.Get("products:all")
	assert.False(t, ok)
	_, ok = c.Get("products:shoes")
	assert.False(t, ok)

	// 空前缀清空一切
	c.InvalidatePrefix("")
	assert.Zero(t, c.Len())
}
