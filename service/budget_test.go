package service

import (
	"math/rand"
	"testing"
	"time"

	"tripplanner/models"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func costPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func item(typ models.ItemType, title, cost string) models.Item {
	it := models.Item{Type: typ, Title: title}
	if cost != "" {
		it.CostEstimate = costPtr(cost)
	}
	return it
}

func entry(b models.Budget, label string) (models.BudgetCategory, bool) {
	for _, c := range b.Breakdown {
		if c.Category == label {
			return c, true
		}
	}
	return models.BudgetCategory{}, false
}

func TestReconcile_AddFood(t *testing.T) {
	b := models.Budget{
		Currency:      models.CurrencyCNY,
		TotalEstimate: dec("1510"),
		Breakdown: []models.BudgetCategory{
			{Category: models.LabelHotel, Estimate: dec("990")},
			{Category: models.LabelFood, Estimate: dec("520")},
		},
	}
	added := item(models.ItemTypeFood, "火锅", "160")

	got, err := Reconcile(b, Mutation{Kind: MutationAdd, New: &added})
	require.NoError(t, err)
	assert.True(t, got.TotalEstimate.Equal(dec("1670")))
	food, ok := entry(got, models.LabelFood)
	require.True(t, ok)
	assert.True(t, food.Estimate.Equal(dec("680")))

	// 入参不变
	assert.True(t, b.TotalEstimate.Equal(dec("1510")))
	assert.True(t, b.Breakdown[1].Estimate.Equal(dec("520")))
}

func TestReconcile_EditToZeroCostActivity(t *testing.T) {
	b := models.Budget{
		Currency:      models.CurrencyCNY,
		TotalEstimate: dec("1000"),
		Breakdown: []models.BudgetCategory{
			{Category: models.LabelSight, Estimate: dec("140")},
			{Category: models.LabelActivity, Estimate: dec("200")},
			{Category: models.LabelFood, Estimate: dec("660")},
		},
	}
	old := item(models.ItemTypeSight, "故宫", "140")
	edited := item(models.ItemTypeActivity, "景山散步", "0")

	got, err := Reconcile(b, Mutation{Kind: MutationEdit, Old: &old, New: &edited})
	require.NoError(t, err)
	assert.True(t, got.TotalEstimate.Equal(dec("860")))
	_, ok := entry(got, models.LabelSight)
	assert.False(t, ok, "扣到 0 的分类应被移除")
	activity, _ := entry(got, models.LabelActivity)
	assert.True(t, activity.Estimate.Equal(dec("200")))
	assert.Len(t, got.Breakdown, 2)
}

func TestReconcile_DeleteLastInCategory(t *testing.T) {
	b := models.Budget{
		Currency:      models.CurrencyCNY,
		TotalEstimate: dec("380"),
		Breakdown: []models.BudgetCategory{
			{Category: models.LabelTransport, Estimate: dec("80")},
			{Category: models.LabelFood, Estimate: dec("300")},
		},
	}
	old := item(models.ItemTypeTransport, "地铁", "80")

	got, err := Reconcile(b, Mutation{Kind: MutationDelete, Old: &old})
	require.NoError(t, err)
	assert.True(t, got.TotalEstimate.Equal(dec("300")))
	assert.Equal(t, []string{models.LabelFood}, labels(got))
}

func TestReconcile_EditSameCategory(t *testing.T) {
	b := models.Budget{TotalEstimate: dec("500"), Breakdown: []models.BudgetCategory{
		{Category: models.LabelHotel, Estimate: dec("500"), Note: "自定义备注"},
	}}
	old := item(models.ItemTypeHotel, "酒店", "500")
	edited := item(models.ItemTypeHotel, "换酒店", "650.5")

	got, err := Reconcile(b, Mutation{Kind: MutationEdit, Old: &old, New: &edited})
	require.NoError(t, err)
	assert.True(t, got.TotalEstimate.Equal(dec("650.5")))
	assert.True(t, got.Breakdown[0].Estimate.Equal(dec("650.5")))
	assert.Equal(t, "自定义备注", got.Breakdown[0].Note)
}

func TestReconcile_NewCategoryAppended(t *testing.T) {
	b := models.Budget{TotalEstimate: dec("100"), Breakdown: []models.BudgetCategory{
		{Category: models.LabelFood, Estimate: dec("100")},
	}}
	added := item(models.ItemTypeSight, "博物馆", "60")
	free := item(models.ItemTypeActivity, "公园", "")

	got, err := Reconcile(b, Mutation{Kind: MutationAdd, New: &added})
	require.NoError(t, err)
	assert.Equal(t, []string{models.LabelFood, models.LabelSight}, labels(got))
	assert.Equal(t, CategoryNote(models.LabelSight), got.Breakdown[1].Note)

	// 金额为 0 不新建分类
	got, err = Reconcile(got, Mutation{Kind: MutationAdd, New: &free})
	require.NoError(t, err)
	assert.Len(t, got.Breakdown, 2)
}

func TestReconcile_InvalidMutation(t *testing.T) {
	_, err := Reconcile(models.Budget{}, Mutation{Kind: MutationAdd})
	assert.True(t, errors.Is(err, ErrReconcileFailed))
	_, err = Reconcile(models.Budget{}, Mutation{Kind: MutationEdit, New: &models.Item{}})
	assert.True(t, errors.Is(err, ErrReconcileFailed))
	_, err = Reconcile(models.Budget{}, Mutation{Kind: MutationKind(9)})
	assert.True(t, errors.Is(err, ErrReconcileFailed))
}

func labels(b models.Budget) []string {
	out := make([]string, len(b.Breakdown))
	for i, c := range b.Breakdown {
		out[i] = c.Category
	}
	return out
}

func TestRecomputeBudget(t *testing.T) {
	days := []models.Day{
		{Items: []models.Item{
			item(models.ItemTypeTransport, "高铁", "300"),
			item(models.ItemTypeFood, "早餐", "30"),
			item(models.ItemTypeSight, "免费公园", "0"),
			item(models.ItemTypeActivity, "散步", ""),
		}},
		{Items: []models.Item{
			item(models.ItemTypeFood, "晚餐", "120.5"),
			item(models.ItemTypeTransport, "返程", "300"),
		}},
	}

	b := RecomputeBudget(days, models.CurrencyCNY)
	assert.Equal(t, models.CurrencyCNY, b.Currency)
	assert.True(t, b.TotalEstimate.Equal(dec("750.5")))
	assert.Equal(t, []string{models.LabelTransport, models.LabelFood}, labels(b))
	assert.True(t, b.Breakdown[0].Estimate.Equal(dec("600")))
	assert.True(t, b.Breakdown[1].Estimate.Equal(dec("150.5")))

	empty := RecomputeBudget(nil, models.CurrencyUSD)
	assert.True(t, empty.TotalEstimate.IsZero())
	assert.NotNil(t, empty.Breakdown)
	assert.Empty(t, empty.Breakdown)
}

func TestVerifyBudget(t *testing.T) {
	trip := sampleTrip()
	require.NoError(t, VerifyBudget(trip))

	drifted := trip.Clone()
	drifted.Budget.TotalEstimate = dec("9999")
	assert.True(t, errors.Is(VerifyBudget(&drifted), ErrReconcileFailed))

	dup := trip.Clone()
	dup.Budget.Breakdown = append(dup.Budget.Breakdown, models.BudgetCategory{Category: models.LabelFood, Estimate: dec("0")})
	assert.Error(t, VerifyBudget(&dup))

	missing := trip.Clone()
	missing.Budget.Breakdown = missing.Budget.Breakdown[1:]
	assert.Error(t, VerifyBudget(&missing))
}

// sampleTrip 预算闭合的两日行程
func sampleTrip() *models.Trip {
	days := []models.Day{
		{Date: "2026-05-01", Items: []models.Item{
			item(models.ItemTypeTransport, "飞往东京", "2000"),
			item(models.ItemTypeFood, "拉面", "80"),
			item(models.ItemTypeHotel, "新宿酒店", "800"),
		}},
		{Date: "2026-05-02", Items: []models.Item{
			item(models.ItemTypeSight, "浅草寺", "0"),
			item(models.ItemTypeFood, "寿司", "300"),
			item(models.ItemTypeTransport, "返程", "2000"),
		}},
	}
	return &models.Trip{
		ID:          "3b8e6c1e-5d7a-4f0e-9a51-6f1f7e7b2a10",
		Title:       "东京两日游",
		Destination: "日本东京",
		StartDate:   "2026-05-01",
		EndDate:     "2026-05-02",
		Days:        days,
		Budget:      RecomputeBudget(days, models.CurrencyCNY),
		CreatedAt:   "2026-04-01T00:00:00Z",
		UpdatedAt:   "2026-04-01T00:00:00Z",
	}
}

func TestApplyMutation_RandomSequenceStaysClosed(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	types := models.ItemTypes()
	trip := sampleTrip()
	now := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	for step := 0; step < 300; step++ {
		day := rng.Intn(len(trip.Days))
		n := len(trip.Days[day].Items)
		in := ItemInput{
			Type:  types[rng.Intn(len(types))],
			Title: "随机项",
			Cost:  costPtr(decimal.NewFromInt(int64(rng.Intn(5) * 50)).String()),
		}

		var (
			next *models.Trip
			err  error
		)
		switch op := rng.Intn(3); {
		case op == 0 || n == 0:
			next, err = AddItem(trip, day, in, now)
		case op == 1:
			next, err = EditItem(trip, day, rng.Intn(n), in, now)
		default:
			next, err = DeleteItem(trip, day, rng.Intn(n), now)
		}
		require.NoError(t, err, "step %d", step)
		require.NoError(t, VerifyBudget(next), "step %d", step)

		want := RecomputeBudget(next.Days, next.Budget.Currency)
		assert.True(t, want.TotalEstimate.Equal(next.Budget.TotalEstimate), "step %d", step)
		assert.ElementsMatch(t, labels(want), labels(next.Budget), "step %d", step)
		trip = next
	}
}
