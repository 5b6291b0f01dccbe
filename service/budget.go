package service

import (
	"fmt"

	"tripplanner/models"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// MutationKind 行程项变更类型
type MutationKind int

const (
	MutationAdd MutationKind = iota + 1
	MutationEdit
	MutationDelete
)

func (k MutationKind) String() string {
	switch k {
	case MutationAdd:
		return "add"
	case MutationEdit:
		return "edit"
	case MutationDelete:
		return "delete"
	}
	return fmt.Sprintf("MutationKind(%d)", int(k))
}

// Mutation 刚刚应用到日程上的一次变更。Add 只有 New，Delete 只有 Old，Edit 两者都有。
type Mutation struct {
	Kind MutationKind
	Old  *models.Item
	New  *models.Item
}

// CategoryNote 预算分类的默认备注
func CategoryNote(label string) string {
	return label + "相关费用"
}

// Reconcile 根据一次变更增量更新预算，返回新的预算，入参不会被修改。
// 已有分类保持原顺序，新分类追加在末尾；分类金额 <= 0 时整条移除；金额为 0 的变更不会新建分类。
func Reconcile(b models.Budget, m Mutation) (models.Budget, error) {
	l := ledger{budget: b.Clone()}

	switch m.Kind {
	case MutationAdd:
		if m.New == nil {
			return b, errors.Wrap(ErrReconcileFailed, "新增变更缺少行程项")
		}
		cost := m.New.Cost()
		l.budget.TotalEstimate = l.budget.TotalEstimate.Add(cost)
		l.credit(m.New.Type.Label(), cost)

	case MutationEdit:
		if m.Old == nil || m.New == nil {
			return b, errors.Wrap(ErrReconcileFailed, "编辑变更缺少新旧行程项")
		}
		oldCost, newCost := m.Old.Cost(), m.New.Cost()
		oldLabel, newLabel := m.Old.Type.Label(), m.New.Type.Label()
		l.budget.TotalEstimate = l.budget.TotalEstimate.Add(newCost.Sub(oldCost))
		if oldLabel == newLabel {
			l.credit(newLabel, newCost.Sub(oldCost))
		} else {
			l.credit(oldLabel, oldCost.Neg())
			l.credit(newLabel, newCost)
		}

	case MutationDelete:
		if m.Old == nil {
			return b, errors.Wrap(ErrReconcileFailed, "删除变更缺少行程项")
		}
		cost := m.Old.Cost()
		l.budget.TotalEstimate = l.budget.TotalEstimate.Sub(cost)
		l.credit(m.Old.Type.Label(), cost.Neg())

	default:
		return b, errors.Wrapf(ErrReconcileFailed, "未知变更类型 %s", m.Kind)
	}

	return l.budget, nil
}

type ledger struct {
	budget models.Budget
}

// credit 给某个分类加减金额
func (l *ledger) credit(label string, amount decimal.Decimal) {
	if amount.IsZero() {
		return
	}
	_, idx, found := lo.FindIndexOf(l.budget.Breakdown, func(c models.BudgetCategory) bool {
		return c.Category == label
	})
	if !found {
		if amount.IsPositive() {
			l.budget.Breakdown = append(l.budget.Breakdown, models.BudgetCategory{
				Category: label,
				Estimate: amount,
				Note:     CategoryNote(label),
			})
		}
		return
	}
	next := l.budget.Breakdown[idx].Estimate.Add(amount)
	if next.LessThanOrEqual(decimal.Zero) {
		l.budget.Breakdown = append(l.budget.Breakdown[:idx], l.budget.Breakdown[idx+1:]...)
		return
	}
	l.budget.Breakdown[idx].Estimate = next
}

// AllItems 按天展开全部行程项
func AllItems(days []models.Day) []models.Item {
	return lo.FlatMap(days, func(d models.Day, _ int) []models.Item { return d.Items })
}

// SumItems 行程项花费合计，未填写按 0 计
func SumItems(items []models.Item) decimal.Decimal {
	return lo.Reduce(items, func(acc decimal.Decimal, it models.Item, _ int) decimal.Decimal {
		return acc.Add(it.Cost())
	}, decimal.Zero)
}

// RecomputeBudget 从全部行程项重新计算预算：按首次出现顺序分组，备注统一生成，合计为 0 的分类不保留。
func RecomputeBudget(days []models.Day, currency models.Currency) models.Budget {
	items := AllItems(days)
	l := ledger{budget: models.Budget{Currency: currency, Breakdown: []models.BudgetCategory{}}}
	for _, it := range items {
		l.credit(it.Type.Label(), it.Cost())
	}
	l.budget.TotalEstimate = SumItems(items)
	return l.budget
}

// VerifyBudget 检查预算与行程项是否闭合：
// 总额 == 分类合计 == 行程项合计，分类与行程项按标签一一对应，标签不重复，且没有 <= 0 的分类。
func VerifyBudget(trip *models.Trip) error {
	var problems []string

	expected := map[string]decimal.Decimal{}
	for _, it := range AllItems(trip.Days) {
		label := it.Type.Label()
		expected[label] = expected[label].Add(it.Cost())
	}

	seen := map[string]bool{}
	breakdownSum := decimal.Zero
	for _, c := range trip.Budget.Breakdown {
		if seen[c.Category] {
			problems = append(problems, fmt.Sprintf("分类 %s 重复", c.Category))
		}
		seen[c.Category] = true
		if c.Estimate.LessThanOrEqual(decimal.Zero) {
			problems = append(problems, fmt.Sprintf("分类 %s 金额 %s 不是正数", c.Category, c.Estimate))
		}
		if want := expected[c.Category]; !c.Estimate.Equal(want) {
			problems = append(problems, fmt.Sprintf("分类 %s 为 %s，行程项合计 %s", c.Category, c.Estimate, want))
		}
		breakdownSum = breakdownSum.Add(c.Estimate)
	}
	for label, want := range expected {
		if want.IsPositive() && !seen[label] {
			problems = append(problems, fmt.Sprintf("缺少分类 %s（行程项合计 %s）", label, want))
		}
	}

	if !trip.Budget.TotalEstimate.Equal(breakdownSum) {
		problems = append(problems, fmt.Sprintf("总额 %s 与分类合计 %s 不符", trip.Budget.TotalEstimate, breakdownSum))
	}
	if itemSum := SumItems(AllItems(trip.Days)); !breakdownSum.Equal(itemSum) {
		problems = append(problems, fmt.Sprintf("分类合计 %s 与行程项合计 %s 不符", breakdownSum, itemSum))
	}

	if len(problems) > 0 {
		return errors.Wrapf(ErrReconcileFailed, "%v", problems)
	}
	return nil
}
