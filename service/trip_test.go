package service

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"tripplanner/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore 基于 map 的 TripStore，failWrites 为 true 时所有写操作失败
type memoryStore struct {
	mu         sync.Mutex
	records    map[string]models.TripRecord
	failWrites bool
	clock      time.Time
	// afterListAll 在读完全部记录、返回之前调用一次
	afterListAll func()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: map[string]models.TripRecord{}, clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (s *memoryStore) Insert(_ context.Context, rec *models.TripRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return errors.New("connection refused")
	}
	// 与 gorm 一致：未指定时才由存储填写
	if rec.CreatedAt.IsZero() {
		s.clock = s.clock.Add(time.Minute)
		rec.CreatedAt = s.clock
	}
	s.records[rec.ID] = *rec
	return nil
}

func (s *memoryStore) Get(_ context.Context, ownerID uint, id string) (*models.TripRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok || rec.UserID != ownerID {
		return nil, ErrTripNotFound
	}
	return &rec, nil
}

func (s *memoryStore) Update(_ context.Context, rec *models.TripRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return errors.New("connection refused")
	}
	if _, ok := s.records[rec.ID]; !ok {
		return ErrTripNotFound
	}
	s.records[rec.ID] = *rec
	return nil
}

func (s *memoryStore) Delete(_ context.Context, ownerID uint, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok || rec.UserID != ownerID {
		return ErrTripNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *memoryStore) ListByOwner(ctx context.Context, ownerID uint, page, pageSize int) ([]models.TripRecord, int64, error) {
	all, _ := s.ListAllByOwner(ctx, ownerID)
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	start := min((page-1)*pageSize, len(all))
	end := min(start+pageSize, len(all))
	return all[start:end], int64(len(all)), nil
}

func (s *memoryStore) ListAllByOwner(_ context.Context, ownerID uint) ([]models.TripRecord, error) {
	s.mu.Lock()
	var out []models.TripRecord
	for _, rec := range s.records {
		if rec.UserID == ownerID {
			out = append(out, rec)
		}
	}
	hook := s.afterListAll
	s.afterListAll = nil
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func newTestTripService() (*TripService, *memoryStore) {
	store := newMemoryStore()
	svc := NewTripService(store, NewMemorySummaryCache(time.Minute), discardLogger())
	// 每次取时间前进一分钟
	tick := time.Date(2026, 4, 15, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		t := tick
		tick = tick.Add(time.Minute)
		return t
	}
	return svc, store
}

func TestTripService_CreateAndGet(t *testing.T) {
	svc, _ := newTestTripService()
	ctx := context.Background()

	input := sampleTrip()
	input.Budget.TotalEstimate = dec("1")
	saved, err := svc.Create(ctx, 7, input)
	require.NoError(t, err)

	assert.Equal(t, input.ID, saved.ID)
	assert.Equal(t, "7", saved.UserID)
	assert.Equal(t, "2026-04-15T09:00:00Z", saved.UpdatedAt)
	assert.Equal(t, "2026-04-01T00:00:00Z", saved.CreatedAt)
	require.NoError(t, VerifyBudget(saved))
	assert.True(t, input.Budget.TotalEstimate.Equal(dec("1")), "入参不被修改")

	got, err := svc.Get(ctx, 7, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Title, got.Title)

	_, err = svc.Get(ctx, 8, saved.ID)
	assert.True(t, errors.Is(err, ErrTripNotFound), "其他用户不可见")
}

func TestTripService_Create_AssignsID(t *testing.T) {
	svc, _ := newTestTripService()
	input := sampleTrip()
	input.ID = "not-a-uuid"
	saved, err := svc.Create(context.Background(), 1, input)
	require.NoError(t, err)
	assert.NotEqual(t, "not-a-uuid", saved.ID)
	assert.Len(t, saved.ID, 36)
}

func TestTripService_Create_CreatedAt(t *testing.T) {
	svc, store := newTestTripService()
	ctx := context.Background()

	input := sampleTrip()
	input.CreatedAt = "2026-04-01T08:00:00+08:00"
	saved, err := svc.Create(ctx, 1, input)
	require.NoError(t, err)
	assert.Equal(t, "2026-04-01T00:00:00Z", saved.CreatedAt)
	assert.True(t, store.records[saved.ID].CreatedAt.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)), "记录与文档时间一致")

	for _, bad := range []string{"昨天", "2026-04-01", "2026/04/01 08:00:00"} {
		input := sampleTrip()
		input.ID = ""
		input.CreatedAt = bad
		saved, err := svc.Create(ctx, 1, input)
		require.NoError(t, err)
		created, err := time.Parse(time.RFC3339, saved.CreatedAt)
		require.NoError(t, err, bad)
		assert.Equal(t, 2026, created.Year())
		assert.Equal(t, time.April, created.Month())
		assert.Equal(t, 15, created.Day())
		assert.True(t, store.records[saved.ID].CreatedAt.Equal(created))
	}
}

func TestTripService_Create_SchemaInvalid(t *testing.T) {
	svc, store := newTestTripService()
	input := sampleTrip()
	input.Days[0].Items[0].Type = "shopping"
	_, err := svc.Create(context.Background(), 1, input)
	assert.True(t, errors.Is(err, ErrSchemaInvalid))
	assert.Empty(t, store.records)
}

func TestTripService_Mutate(t *testing.T) {
	svc, _ := newTestTripService()
	ctx := context.Background()
	saved, err := svc.Create(ctx, 1, sampleTrip())
	require.NoError(t, err)

	day := 1
	next, err := svc.Mutate(ctx, 1, saved.ID, ItemMutation{
		Kind: MutationAdd, Day: &day,
		Item: ItemInput{Time: "15:00", Type: models.ItemTypeFood, Title: "下午茶", Cost: costPtr("160")},
	})
	require.NoError(t, err)
	assert.True(t, next.Budget.TotalEstimate.Equal(saved.Budget.TotalEstimate.Add(dec("160"))))

	stored, err := svc.Get(ctx, 1, saved.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Days[1].Items, 4)
	assert.True(t, stored.Budget.TotalEstimate.Equal(next.Budget.TotalEstimate))

	_, err = svc.Mutate(ctx, 1, "missing", ItemMutation{Kind: MutationAdd, Day: &day})
	assert.True(t, errors.Is(err, ErrTripNotFound))

	bad := 5
	_, err = svc.Mutate(ctx, 1, saved.ID, ItemMutation{Kind: MutationDelete, Day: &day, Index: &bad})
	assert.True(t, errors.Is(err, ErrInvalidMutation))
}

func TestTripService_Mutate_PersistenceFailureKeepsStoredVersion(t *testing.T) {
	svc, store := newTestTripService()
	ctx := context.Background()
	saved, err := svc.Create(ctx, 1, sampleTrip())
	require.NoError(t, err)

	store.failWrites = true
	day, idx := 0, 0
	_, err = svc.Mutate(ctx, 1, saved.ID, ItemMutation{Kind: MutationDelete, Day: &day, Index: &idx})
	assert.True(t, errors.Is(err, ErrPersistenceFailed))

	store.failWrites = false
	stored, err := svc.Get(ctx, 1, saved.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Days[0].Items, 3)
	assert.True(t, stored.Budget.TotalEstimate.Equal(saved.Budget.TotalEstimate))
}

func TestTripService_UpdateKeepsIdentity(t *testing.T) {
	svc, store := newTestTripService()
	ctx := context.Background()
	saved, err := svc.Create(ctx, 1, sampleTrip())
	require.NoError(t, err)

	replacement := sampleTrip()
	replacement.ID = "other"
	replacement.CreatedAt = "2000-01-01T00:00:00Z"
	replacement.Title = "东京两日游（修改）"
	updated, err := svc.Update(ctx, 1, saved.ID, replacement)
	require.NoError(t, err)

	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, saved.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "1", updated.UserID)
	assert.Equal(t, "东京两日游（修改）", store.records[saved.ID].Title)
}

func TestTripService_RebuildBudget(t *testing.T) {
	svc, store := newTestTripService()
	ctx := context.Background()
	saved, err := svc.Create(ctx, 1, sampleTrip())
	require.NoError(t, err)

	// 模拟历史上已经对不上的文档
	drifted := saved.Clone()
	drifted.Budget.TotalEstimate = dec("1")
	rec := store.records[saved.ID]
	require.NoError(t, rec.SetTrip(&drifted))
	store.records[saved.ID] = rec

	day := 0
	_, err = svc.Mutate(ctx, 1, saved.ID, ItemMutation{Kind: MutationAdd, Day: &day, Item: ItemInput{Title: "x", Cost: costPtr("1")}})
	assert.True(t, errors.Is(err, ErrReconcileFailed))

	fixed, err := svc.RebuildBudget(ctx, 1, saved.ID)
	require.NoError(t, err)
	require.NoError(t, VerifyBudget(fixed))
}

func TestTripService_ListAndDelete(t *testing.T) {
	svc, _ := newTestTripService()
	ctx := context.Background()
	var ids []string
	for i := 0; i < 3; i++ {
		trip := sampleTrip()
		trip.ID = ""
		trip.CreatedAt = ""
		trip.Title = "行程" + strconv.Itoa(i)
		saved, err := svc.Create(ctx, 1, trip)
		require.NoError(t, err)
		ids = append(ids, saved.ID)
	}
	_, err := svc.Create(ctx, 2, sampleTrip())
	require.NoError(t, err)

	items, total, err := svc.List(ctx, 1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 2)
	assert.Equal(t, "行程2", items[0].Title)

	require.NoError(t, svc.Delete(ctx, 1, ids[0]))
	assert.True(t, errors.Is(svc.Delete(ctx, 1, ids[0]), ErrTripNotFound))
	_, total, _ = svc.List(ctx, 1, 1, 10)
	assert.Equal(t, int64(2), total)
}

func TestTripService_SummaryInvalidatedOnWrite(t *testing.T) {
	svc, _ := newTestTripService()
	ctx := context.Background()

	summary, err := svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, summary.TripCount)

	saved, err := svc.Create(ctx, 1, sampleTrip())
	require.NoError(t, err)
	summary, err = svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TripCount)
	assert.True(t, summary.TotalBudget.Equal(dec("5180")))

	require.NoError(t, svc.Delete(ctx, 1, saved.ID))
	summary, err = svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, summary.TripCount)
}

func TestTripService_SummaryNotCachedWhenWrittenDuringRead(t *testing.T) {
	svc, store := newTestTripService()
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, sampleTrip())
	require.NoError(t, err)

	// 汇总读库期间同一用户又保存了一份行程
	store.afterListAll = func() {
		second := sampleTrip()
		second.ID = ""
		_, err := svc.Create(ctx, 1, second)
		require.NoError(t, err)
	}
	summary, err := svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TripCount)

	// 旧快照没有写进缓存
	summary, err = svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TripCount)
	assert.True(t, summary.TotalBudget.Equal(dec("10360")))
}

func TestSummarize(t *testing.T) {
	a := &models.Trip{Budget: models.Budget{TotalEstimate: dec("1000"), Breakdown: []models.BudgetCategory{
		{Category: "交通", Estimate: dec("600")},
		{Category: "餐饮", Estimate: dec("400")},
	}}}
	b := &models.Trip{Budget: models.Budget{TotalEstimate: dec("1000"), Breakdown: []models.BudgetCategory{
		{Category: "住宿", Estimate: dec("500")},
		{Category: "餐饮", Estimate: dec("200")},
		{Category: "门票", Estimate: dec("100")},
		{Category: "活动", Estimate: dec("100")},
		{Category: "其他", Estimate: dec("100")},
	}}}

	s := Summarize([]*models.Trip{a, b})
	assert.Equal(t, 2, s.TripCount)
	assert.True(t, s.TotalBudget.Equal(dec("2000")))
	require.Len(t, s.TopCategories, TopCategoryCount)
	assert.Equal(t, "交通", s.TopCategories[0].Category)
	assert.Equal(t, 30, s.TopCategories[0].Percent)
	assert.Equal(t, "餐饮", s.TopCategories[1].Category)
	assert.True(t, s.TopCategories[1].Estimate.Equal(dec("600")))
	// 金额相同按首次出现顺序
	assert.Equal(t, "门票", s.TopCategories[3].Category)
	assert.Equal(t, "活动", s.TopCategories[4].Category)

	empty := Summarize(nil)
	assert.Zero(t, empty.TripCount)
	assert.Empty(t, empty.TopCategories)
}
