package catalog

import (
	"strings"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
)

// CategoryAll 哨兵值：不做分类过滤
const CategoryAll = "all"

// CategoryGroups 前端筛选项到后端分类编码集合的映射。
// 过滤语义统一成"组匹配"：等值过滤就是单元素集合的退化情形。
// 不要在页面里写 if/else 分支，新增筛选项只改这张表。
var CategoryGroups = map[string][]string{
	"clothing":    {product.CategoryMan, product.CategoryWoman},
	"shirts":      {product.CategoryMan, product.CategoryWoman},
	"jeans":       {product.CategoryMan, product.CategoryWoman},
	"kids":        {product.CategoryKid},
	"accessories": {product.CategoryAccessories},
	"shoes":       {product.CategoryShoes},
	"outerwear":   {product.CategoryOuterwear},
}

// FilterByCategory 按筛选项收窄商品列表，保持原有顺序。
// selected 为空或 "all" 时原样返回；未知筛选项返回空列表而不是报错。
func FilterByCategory(list []*product.Product, selected string) []*product.Product {
	if selected == "" || strings.EqualFold(selected, CategoryAll) {
		return list
	}

	group, ok := CategoryGroups[strings.ToLower(selected)]
	if !ok {
		// 兜底：筛选项本身可能就是后端编码（admin 工具会直接传 MAN/WOMAN）
		group = []string{strings.ToUpper(selected)}
	}

	codes := make(map[string]struct{}, len(group))
	for _, c := range group {
		codes[c] = struct{}{}
	}

	out := make([]*product.Product, 0, len(list))
	for _, p := range list {
		if _, hit := codes[p.Category]; hit {
			out = append(out, p)
		}
	}
	return out
}

// FilterByPrice 按闭区间 [lo, hi] 过滤价格（分），保持原有顺序。
// lo > hi 时自然得到空集，与线上行为保持一致，不视为错误。
func FilterByPrice(list []*product.Product, lo, hi int64) []*product.Product {
	out := make([]*product.Product, 0, len(list))
	for _, p := range list {
		if p.Price >= lo && p.Price <= hi {
			out = append(out, p)
		}
	}
	return out
}
