package models

import "github.com/shopspring/decimal"

type InventorySummary struct {
	Total int             `json:"total"`
	Value decimal.Decimal `json:"value"`
}

type Dashboard struct {
	RecentProducts []Product        `json:"recentProducts"`
	Inventory      InventorySummary `json:"inventory"`
	RecentSales    []Sale           `json:"recentSales"`
	TopProducts    []TopProduct     `json:"topProducts"`
}
