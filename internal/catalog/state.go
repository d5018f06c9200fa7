package catalog

import "github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"

// DefaultPriceMax 价格滑块默认上限（分）
const DefaultPriceMax int64 = 100000

// FilterState 页面级筛选状态：进入页面时创建，交互中修改，离开即丢弃。
// 不做持久化。
type FilterState struct {
	Category string
	PriceMin int64
	PriceMax int64
	SortKey  string
}

// NewFilterState 页面默认筛选状态
func NewFilterState() FilterState {
	return FilterState{
		Category: CategoryAll,
		PriceMin: 0,
		PriceMax: DefaultPriceMax,
		SortKey:  SortNewest,
	}
}

// Apply 按 分类 -> 价格 -> 排序 的顺序跑一遍完整管线
func (f FilterState) Apply(list []*product.Product) []*product.Product {
	out := FilterByCategory(list, f.Category)
	out = FilterByPrice(out, f.PriceMin, f.PriceMax)
	return SortProducts(out, f.SortKey)
}
