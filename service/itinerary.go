package service

import (
	"fmt"
	"strings"
	"time"

	"tripplanner/models"

	"github.com/shopspring/decimal"
)

// ItemInput 新增/编辑行程项时提交的内容
type ItemInput struct {
	Time     string
	Type     models.ItemType
	Title    string
	Note     string
	Location *models.Location
	Cost     *decimal.Decimal
}

// ItemMutation 对某一天的单个行程项的增删改。Day 为天序号（从 0 开始），Index 为该天内的位置，编辑和删除时必填。
type ItemMutation struct {
	Kind  MutationKind
	Day   *int
	Index *int
	Item  ItemInput
}

// AddItem 在指定天追加行程项（即「记一笔」）
func AddItem(trip *models.Trip, day int, in ItemInput, now time.Time) (*models.Trip, error) {
	return ApplyMutation(trip, ItemMutation{Kind: MutationAdd, Day: &day, Item: in}, now)
}

// EditItem 替换指定位置的行程项
func EditItem(trip *models.Trip, day, index int, in ItemInput, now time.Time) (*models.Trip, error) {
	return ApplyMutation(trip, ItemMutation{Kind: MutationEdit, Day: &day, Index: &index, Item: in}, now)
}

// DeleteItem 删除指定位置的行程项
func DeleteItem(trip *models.Trip, day, index int, now time.Time) (*models.Trip, error) {
	return ApplyMutation(trip, ItemMutation{Kind: MutationDelete, Day: &day, Index: &index}, now)
}

// ApplyMutation 校验并应用一次变更，随后立即对账预算，返回全新的行程。
// 入参 trip 不会被修改；校验、对账任一步失败都不会产生部分生效的结果。
func ApplyMutation(trip *models.Trip, m ItemMutation, now time.Time) (*models.Trip, error) {
	if trip == nil {
		return nil, invalidMutation("trip", "不能为空")
	}
	day, err := targetDay(trip, m.Day)
	if err != nil {
		return nil, err
	}

	next := trip.Clone()
	var change Mutation

	switch m.Kind {
	case MutationAdd:
		item, err := m.Item.build()
		if err != nil {
			return nil, err
		}
		next.Days[day].Items = append(next.Days[day].Items, item)
		change = Mutation{Kind: MutationAdd, New: &item}

	case MutationEdit:
		idx, err := targetItem(trip, day, m.Index)
		if err != nil {
			return nil, err
		}
		item, err := m.Item.build()
		if err != nil {
			return nil, err
		}
		old := trip.Days[day].Items[idx].Clone()
		next.Days[day].Items[idx] = item
		change = Mutation{Kind: MutationEdit, Old: &old, New: &item}

	case MutationDelete:
		idx, err := targetItem(trip, day, m.Index)
		if err != nil {
			return nil, err
		}
		old := trip.Days[day].Items[idx].Clone()
		items := next.Days[day].Items
		next.Days[day].Items = append(items[:idx], items[idx+1:]...)
		change = Mutation{Kind: MutationDelete, Old: &old}

	default:
		return nil, invalidMutation("kind", fmt.Sprintf("未知变更类型 %s", m.Kind))
	}

	budget, err := Reconcile(next.Budget, change)
	if err != nil {
		return nil, err
	}
	next.Budget = budget
	if err := VerifyBudget(&next); err != nil {
		return nil, err
	}
	next.Touch(now)
	return &next, nil
}

// RebuildBudget 从行程项完整重算预算，用于修复历史上已经对不上的文档
func RebuildBudget(trip *models.Trip, now time.Time) *models.Trip {
	next := trip.Clone()
	currency := next.Budget.Currency
	if !currency.Valid() {
		currency = models.CurrencyCNY
	}
	next.Budget = RecomputeBudget(next.Days, currency)
	next.Touch(now)
	return &next
}

func targetDay(trip *models.Trip, day *int) (int, error) {
	if day == nil {
		return 0, invalidMutation("day", "缺少目标日期")
	}
	if *day < 0 || *day >= len(trip.Days) {
		return 0, invalidMutation("day", fmt.Sprintf("第 %d 天不存在（共 %d 天）", *day+1, len(trip.Days)))
	}
	return *day, nil
}

func targetItem(trip *models.Trip, day int, index *int) (int, error) {
	if index == nil {
		return 0, invalidMutation("index", "缺少行程项位置")
	}
	if n := len(trip.Days[day].Items); *index < 0 || *index >= n {
		return 0, invalidMutation("index", fmt.Sprintf("行程项 %d 不存在（当天共 %d 项）", *index, n))
	}
	return *index, nil
}

func (in ItemInput) build() (models.Item, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Item{}, invalidMutation("title", "不能为空")
	}
	if in.Cost == nil {
		return models.Item{}, invalidMutation("cost", "缺少金额")
	}
	if in.Cost.IsNegative() {
		return models.Item{}, invalidMutation("cost", "不能为负数")
	}
	typ := in.Type
	if typ == "" {
		typ = models.ItemTypeActivity
	}
	if !typ.Valid() {
		return models.Item{}, invalidMutation("type", fmt.Sprintf("未知类型 %q", typ))
	}
	tm := strings.TrimSpace(in.Time)
	if tm != "" && !models.ValidClock(tm) {
		return models.Item{}, invalidMutation("time", "格式应为 HH:MM")
	}
	if loc := in.Location; loc != nil {
		if loc.Lat != nil && (*loc.Lat < -90 || *loc.Lat > 90) {
			return models.Item{}, invalidMutation("location.lat", "超出范围")
		}
		if loc.Lng != nil && (*loc.Lng < -180 || *loc.Lng > 180) {
			return models.Item{}, invalidMutation("location.lng", "超出范围")
		}
	}

	cost := *in.Cost
	item := models.Item{
		Time:         tm,
		Type:         typ,
		Title:        title,
		Note:         strings.TrimSpace(in.Note),
		CostEstimate: &cost,
	}
	if in.Location != nil {
		item.Location = models.Item{Location: in.Location}.Clone().Location
	}
	return item, nil
}
