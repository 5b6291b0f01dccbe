package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// 与原有 trip_json 文档保持一致：金额以数字而非字符串输出
	decimal.MarshalJSONWithoutQuotes = true
}

// DateLayout 行程日期格式
const DateLayout = "2006-01-02"

// ItemType 行程项类型（封闭枚举）
type ItemType string

const (
	ItemTypeSight     ItemType = "sight"
	ItemTypeFood      ItemType = "food"
	ItemTypeHotel     ItemType = "hotel"
	ItemTypeTransport ItemType = "transport"
	ItemTypeActivity  ItemType = "activity"
)

// 预算分类标签
const (
	LabelSight     = "门票"
	LabelFood      = "餐饮"
	LabelHotel     = "住宿"
	LabelTransport = "交通"
	LabelActivity  = "活动"
	LabelOther     = "其他"
)

// ItemTypes 返回全部合法的行程项类型
func ItemTypes() []ItemType {
	return []ItemType{ItemTypeSight, ItemTypeFood, ItemTypeHotel, ItemTypeTransport, ItemTypeActivity}
}

// Valid 是否为已知类型
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeSight, ItemTypeFood, ItemTypeHotel, ItemTypeTransport, ItemTypeActivity:
		return true
	}
	return false
}

// Label 行程项类型 -> 预算分类标签。
// 这是类型到标签映射的唯一来源，规划后处理与增删改对账都走这里；未知类型归入「其他」。
func (t ItemType) Label() string {
	switch t {
	case ItemTypeSight:
		return LabelSight
	case ItemTypeFood:
		return LabelFood
	case ItemTypeHotel:
		return LabelHotel
	case ItemTypeTransport:
		return LabelTransport
	case ItemTypeActivity:
		return LabelActivity
	default:
		return LabelOther
	}
}

// Currency 币种（封闭枚举）
type Currency string

const (
	CurrencyCNY Currency = "CNY"
	CurrencyJPY Currency = "JPY"
	CurrencyUSD Currency = "USD"
)

// Currencies 返回全部支持的币种
func Currencies() []Currency {
	return []Currency{CurrencyCNY, CurrencyJPY, CurrencyUSD}
}

// Valid 是否为支持的币种
func (c Currency) Valid() bool {
	switch c {
	case CurrencyCNY, CurrencyJPY, CurrencyUSD:
		return true
	}
	return false
}

// Location 地点（WGS84 坐标）
type Location struct {
	Name    string   `json:"name,omitempty"`
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// HasCoordinates 是否带有完整坐标
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Lat != nil && l.Lng != nil
}

// Item 行程项，同时也是一笔开销
type Item struct {
	Time         string           `json:"time,omitempty" jsonschema:"pattern=^([01][0-9]|2[0-3]):[0-5][0-9]$"`
	Type         ItemType         `json:"type"`
	Title        string           `json:"title"`
	Note         string           `json:"note,omitempty"`
	Location     *Location        `json:"location,omitempty"`
	CostEstimate *decimal.Decimal `json:"costEstimate,omitempty"`
}

// Cost 预估花费，未填写视为 0
func (it Item) Cost() decimal.Decimal {
	if it.CostEstimate == nil {
		return decimal.Zero
	}
	return *it.CostEstimate
}

// Clone 深拷贝
func (it Item) Clone() Item {
	out := it
	if it.Location != nil {
		loc := *it.Location
		if it.Location.Lat != nil {
			lat := *it.Location.Lat
			loc.Lat = &lat
		}
		if it.Location.Lng != nil {
			lng := *it.Location.Lng
			loc.Lng = &lng
		}
		out.Location = &loc
	}
	if it.CostEstimate != nil {
		cost := *it.CostEstimate
		out.CostEstimate = &cost
	}
	return out
}

// Day 单日行程
type Day struct {
	Date  string `json:"date" jsonschema:"format=date"`
	Items []Item `json:"items"`
}

// SortedItems 按时间排序后的行程项（用于展示，不改变存储顺序）。没有时间的排在最后。
func (d Day) SortedItems() []Item {
	items := make([]Item, len(d.Items))
	copy(items, d.Items)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Time, items[j].Time
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		return a < b
	})
	return items
}

// BudgetCategory 预算分类汇总
type BudgetCategory struct {
	Category string          `json:"category"`
	Estimate decimal.Decimal `json:"estimate"`
	Note     string          `json:"note,omitempty"`
}

// Budget 预算
type Budget struct {
	Currency      Currency         `json:"currency"`
	TotalEstimate decimal.Decimal  `json:"totalEstimate"`
	Breakdown     []BudgetCategory `json:"breakdown"`
}

// Clone 深拷贝
func (b Budget) Clone() Budget {
	out := b
	out.Breakdown = make([]BudgetCategory, len(b.Breakdown))
	copy(out.Breakdown, b.Breakdown)
	return out
}

// Preferences 出行偏好
type Preferences struct {
	People int      `json:"people"`
	Tags   []string `json:"tags"`
}

// Trip 行程文档（trip_json 的完整结构）
type Trip struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId,omitempty"`
	Title       string       `json:"title"`
	Destination string       `json:"destination"`
	StartDate   string       `json:"startDate" jsonschema:"format=date"`
	EndDate     string       `json:"endDate" jsonschema:"format=date"`
	Days        []Day        `json:"days"`
	Budget      Budget       `json:"budget"`
	Preferences *Preferences `json:"preferences,omitempty"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

// Clone 深拷贝，修改副本不会影响原文档
func (t Trip) Clone() Trip {
	out := t
	out.Days = make([]Day, len(t.Days))
	for i, d := range t.Days {
		items := make([]Item, len(d.Items))
		for j, it := range d.Items {
			items[j] = it.Clone()
		}
		out.Days[i] = Day{Date: d.Date, Items: items}
	}
	out.Budget = t.Budget.Clone()
	if t.Preferences != nil {
		p := *t.Preferences
		p.Tags = append([]string(nil), t.Preferences.Tags...)
		out.Preferences = &p
	}
	return out
}

// Touch 更新 updatedAt
func (t *Trip) Touch(now time.Time) {
	t.UpdatedAt = now.UTC().Format(time.RFC3339)
}
