package catalog

import "fmt"

// 网格布局在两类页面上各有一套合法取值：
// 商店页（view-all / favorites）用 2x2 / 3x3 / 5x5，
// 分类页（man / woman / kids）用 2x2 / 6x6 / 10x10。
// 两套布局是独立类型，传错页面属于编程错误，Columns 会直接 panic。

// ShopLayout 商店页网格布局
type ShopLayout string

const (
	Shop2x2 ShopLayout = "2x2"
	Shop3x3 ShopLayout = "3x3"
	Shop5x5 ShopLayout = "5x5"
)

// Columns 布局对应的列数
func (l ShopLayout) Columns() int {
	switch l {
	case Shop2x2:
		return 2
	case Shop3x3:
		return 3
	case Shop5x5:
		return 5
	}
	panic(fmt.Sprintf("catalog: invalid shop layout %q", string(l)))
}

// CategoryLayout 分类页网格布局
type CategoryLayout string

const (
	Category2x2   CategoryLayout = "2x2"
	Category6x6   CategoryLayout = "6x6"
	Category10x10 CategoryLayout = "10x10"
)

// Columns 布局对应的列数
func (l CategoryLayout) Columns() int {
	switch l {
	case Category2x2:
		return 2
	case Category6x6:
		return 6
	case Category10x10:
		return 10
	}
	panic(fmt.Sprintf("catalog: invalid category layout %q", string(l)))
}
