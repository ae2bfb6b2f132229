package domain

import "time"

// CatalogSnapshot 按 Performance 降序排列的商品全量视图，发布后不可变
type CatalogSnapshot struct {
	Listings []Listing `json:"listings"`
	BuiltAt  time.Time `json:"built_at"`
}

// CategorySnapshot 按字母序排列的分类名集合，发布后不可变
type CategorySnapshot struct {
	Names   []string  `json:"names"`
	BuiltAt time.Time `json:"built_at"`
}
