package service

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"tripplanner/models"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TopCategoryCount 首页展示的预算分类数量
const TopCategoryCount = 5

// TripStore 行程文档存储。记录不存在（或不属于该用户）时返回 ErrTripNotFound。
type TripStore interface {
	Insert(ctx context.Context, rec *models.TripRecord) error
	Get(ctx context.Context, ownerID uint, id string) (*models.TripRecord, error)
	Update(ctx context.Context, rec *models.TripRecord) error
	Delete(ctx context.Context, ownerID uint, id string) error
	ListByOwner(ctx context.Context, ownerID uint, page, pageSize int) ([]models.TripRecord, int64, error)
	ListAllByOwner(ctx context.Context, ownerID uint) ([]models.TripRecord, error)
}

// TripService 行程的保存、读取与修改。每次写入都在存储确认后才返回新文档，失败时已保存的版本保持不变。
type TripService struct {
	store  TripStore
	cache  SummaryCache
	logger *log.Logger
	now    func() time.Time

	// 每个用户的写入代数，汇总只在读取期间没有写入时才回填缓存
	genMu       sync.Mutex
	generations map[uint]uint64
}

// NewTripService 创建行程服务
func NewTripService(store TripStore, cache SummaryCache, logger *log.Logger) *TripService {
	return &TripService{store: store, cache: cache, logger: logger, now: time.Now, generations: map[uint]uint64{}}
}

func (s *TripService) generation(ownerID uint) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.generations[ownerID]
}

// written 在存储确认写入后调用：先推进代数，再清缓存
func (s *TripService) written(ctx context.Context, ownerID uint) {
	s.genMu.Lock()
	s.generations[ownerID]++
	s.genMu.Unlock()
	s.cache.Invalidate(ctx, ownerID)
}

// createdStamp 合法的 RFC3339 时间保留（统一为 UTC），缺失或格式不对时取 now
func createdStamp(value string, now time.Time) (string, time.Time) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC().Format(time.RFC3339), t.UTC()
	}
	now = now.UTC().Truncate(time.Second)
	return now.Format(time.RFC3339), now
}

func persistenceFailed(err error) error {
	if errors.Is(err, ErrTripNotFound) {
		return err
	}
	return errors.Wrapf(ErrPersistenceFailed, "%v", err)
}

// Create 把一份行程保存到当前用户名下（规划页「保存行程」）
func (s *TripService) Create(ctx context.Context, ownerID uint, trip *models.Trip) (*models.Trip, error) {
	if problems := models.ValidateTrip(trip); len(problems) > 0 {
		return nil, &SchemaError{Problems: problems}
	}
	next := trip.Clone()
	if _, err := uuid.Parse(next.ID); err != nil {
		next.ID = uuid.NewString()
	}
	next.UserID = strconv.FormatUint(uint64(ownerID), 10)
	next.Budget = RecomputeBudget(next.Days, next.Budget.Currency)
	now := s.now()
	var created time.Time
	next.CreatedAt, created = createdStamp(next.CreatedAt, now)
	next.Touch(now)

	rec, err := models.NewTripRecord(ownerID, &next)
	if err != nil {
		return nil, persistenceFailed(err)
	}
	// 列表按记录的 created_at 排序，与文档保持同一时刻
	rec.CreatedAt = created
	if err := s.store.Insert(ctx, rec); err != nil {
		s.logger.Error("保存行程失败", "tripId", next.ID, "owner", ownerID, "error", err)
		return nil, persistenceFailed(err)
	}
	s.written(ctx, ownerID)
	s.logger.Info("保存行程", "tripId", next.ID, "owner", ownerID, "days", len(next.Days))
	return &next, nil
}

// Get 读取行程文档
func (s *TripService) Get(ctx context.Context, ownerID uint, id string) (*models.Trip, error) {
	_, trip, err := s.load(ctx, ownerID, id)
	return trip, err
}

func (s *TripService) load(ctx context.Context, ownerID uint, id string) (*models.TripRecord, *models.Trip, error) {
	rec, err := s.store.Get(ctx, ownerID, id)
	if err != nil {
		return nil, nil, persistenceFailed(err)
	}
	trip, err := rec.Trip()
	if err != nil {
		return nil, nil, errors.Wrapf(ErrPersistenceFailed, "行程文档损坏: %v", err)
	}
	return rec, trip, nil
}

// List 当前用户的行程列表，按创建时间倒序
func (s *TripService) List(ctx context.Context, ownerID uint, page, pageSize int) ([]models.TripListItem, int64, error) {
	records, total, err := s.store.ListByOwner(ctx, ownerID, page, pageSize)
	if err != nil {
		return nil, 0, persistenceFailed(err)
	}
	items := make([]models.TripListItem, 0, len(records))
	for i := range records {
		item, err := records[i].ListItem()
		if err != nil {
			s.logger.Warn("行程文档无法解析", "tripId", records[i].ID, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, total, nil
}

// Update 整体替换行程文档：重新校验并重算预算，id、所属用户与创建时间保持不变
func (s *TripService) Update(ctx context.Context, ownerID uint, id string, trip *models.Trip) (*models.Trip, error) {
	rec, current, err := s.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if problems := models.ValidateTrip(trip); len(problems) > 0 {
		return nil, &SchemaError{Problems: problems}
	}
	next := trip.Clone()
	next.ID = current.ID
	next.UserID = current.UserID
	next.CreatedAt = current.CreatedAt
	next.Budget = RecomputeBudget(next.Days, next.Budget.Currency)
	next.Touch(s.now())
	return s.save(ctx, rec, &next)
}

// Mutate 对行程项做一次增删改并同步预算
func (s *TripService) Mutate(ctx context.Context, ownerID uint, id string, m ItemMutation) (*models.Trip, error) {
	rec, current, err := s.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	next, err := ApplyMutation(current, m, s.now())
	if err != nil {
		s.logger.Warn("行程修改被拒绝", "tripId", id, "kind", m.Kind, "error", err)
		return nil, err
	}
	return s.save(ctx, rec, next)
}

// RebuildBudget 从行程项重算预算并保存
func (s *TripService) RebuildBudget(ctx context.Context, ownerID uint, id string) (*models.Trip, error) {
	rec, current, err := s.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, rec, RebuildBudget(current, s.now()))
}

func (s *TripService) save(ctx context.Context, rec *models.TripRecord, next *models.Trip) (*models.Trip, error) {
	updated := *rec
	if err := updated.SetTrip(next); err != nil {
		return nil, persistenceFailed(err)
	}
	if err := s.store.Update(ctx, &updated); err != nil {
		s.logger.Error("更新行程失败", "tripId", rec.ID, "owner", rec.UserID, "error", err)
		return nil, persistenceFailed(err)
	}
	s.written(ctx, rec.UserID)
	return next, nil
}

// Delete 删除行程
func (s *TripService) Delete(ctx context.Context, ownerID uint, id string) error {
	if err := s.store.Delete(ctx, ownerID, id); err != nil {
		return persistenceFailed(err)
	}
	s.written(ctx, ownerID)
	s.logger.Info("删除行程", "tripId", id, "owner", ownerID)
	return nil
}

// Summary 当前用户全部行程的预算汇总，优先读缓存
func (s *TripService) Summary(ctx context.Context, ownerID uint) (*models.TripSummary, error) {
	if cached, ok := s.cache.Get(ctx, ownerID); ok {
		return cached, nil
	}
	gen := s.generation(ownerID)
	records, err := s.store.ListAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, persistenceFailed(err)
	}
	trips := make([]*models.Trip, 0, len(records))
	for i := range records {
		trip, err := records[i].Trip()
		if err != nil {
			s.logger.Warn("行程文档无法解析", "tripId", records[i].ID, "error", err)
			continue
		}
		trips = append(trips, trip)
	}
	summary := Summarize(trips)
	if s.generation(ownerID) == gen {
		s.cache.Set(ctx, ownerID, &summary)
	}
	return &summary, nil
}

// Summarize 合计全部行程的总预算，并按金额取前几个分类
func Summarize(trips []*models.Trip) models.TripSummary {
	total := lo.Reduce(trips, func(acc decimal.Decimal, t *models.Trip, _ int) decimal.Decimal {
		return acc.Add(t.Budget.TotalEstimate)
	}, decimal.Zero)

	var order []string
	sums := map[string]decimal.Decimal{}
	for _, t := range trips {
		for _, c := range t.Budget.Breakdown {
			if _, ok := sums[c.Category]; !ok {
				order = append(order, c.Category)
			}
			sums[c.Category] = sums[c.Category].Add(c.Estimate)
		}
	}
	categories := lo.Map(order, func(label string, _ int) models.CategoryTotal {
		return models.CategoryTotal{Category: label, Estimate: sums[label], Percent: percentOf(sums[label], total)}
	})
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Estimate.GreaterThan(categories[j].Estimate)
	})
	if len(categories) > TopCategoryCount {
		categories = categories[:TopCategoryCount]
	}

	return models.TripSummary{
		TripCount:     len(trips),
		TotalBudget:   total,
		TopCategories: categories,
	}
}

func percentOf(part, total decimal.Decimal) int {
	if !total.IsPositive() {
		return 0
	}
	p := int(part.Mul(decimal.NewFromInt(100)).Div(total).Round(0).IntPart())
	return min(p, 100)
}
