package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
)

// 排序键。未识别的键按 SortNewest 处理。
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
)

// SortProducts 返回按 key 排序的新列表，不修改入参。
// 稳定排序：价格/名称相同的商品保持原有相对顺序，网格渲染依赖这一点。
func SortProducts(list []*product.Product, key string) []*product.Product {
	out := make([]*product.Product, len(list))
	copy(out, list)

	switch key {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortNameAsc:
		// collate.Loose 忽略大小写与变音，得到 alpha < Beta < Zeta 这样的字典序
		c := collate.New(language.English, collate.Loose)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	default:
		// newest：按创建时间倒序
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}
