package models

import "github.com/shopspring/decimal"

// CategoryTotal 某一预算分类在全部行程中的合计
type CategoryTotal struct {
	Category string          `json:"category" example:"住宿"`
	Estimate decimal.Decimal `json:"estimate" swaggertype:"number" example:"3600"`
	Percent  int             `json:"percent" example:"40"` // 占总预算的百分比，最多 100
}

// TripSummary 用户全部行程的预算汇总（首页）
type TripSummary struct {
	TripCount     int             `json:"tripCount" example:"3"`
	TotalBudget   decimal.Decimal `json:"totalBudget" swaggertype:"number" example:"9000"`
	TopCategories []CategoryTotal `json:"topCategories"`
}
