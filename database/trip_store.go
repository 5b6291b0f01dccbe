package database

import (
	"context"
	"errors"

	"tripplanner/models"
	"tripplanner/service"

	"gorm.io/gorm"
)

// TripStore 基于 gorm 的行程存储，所有查询都带 user_id 条件
type TripStore struct {
	db *gorm.DB
}

// NewTripStore 创建行程存储
func NewTripStore(db *gorm.DB) *TripStore {
	return &TripStore{db: db}
}

// Insert 新增记录
func (s *TripStore) Insert(ctx context.Context, rec *models.TripRecord) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

// Get 读取单条记录
func (s *TripStore) Get(ctx context.Context, ownerID uint, id string) (*models.TripRecord, error) {
	var rec models.TripRecord
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update 写回文档与平铺字段
func (s *TripStore) Update(ctx context.Context, rec *models.TripRecord) error {
	res := s.db.WithContext(ctx).Model(&models.TripRecord{}).
		Where("id = ? AND user_id = ?", rec.ID, rec.UserID).
		Updates(map[string]any{
			"title":       rec.Title,
			"destination": rec.Destination,
			"start_date":  rec.StartDate,
			"end_date":    rec.EndDate,
			"trip_json":   rec.TripJSON,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrTripNotFound
	}
	return nil
}

// Delete 软删除
func (s *TripStore) Delete(ctx context.Context, ownerID uint, id string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.TripRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrTripNotFound
	}
	return nil
}

// ListByOwner 分页列表，按创建时间倒序
func (s *TripStore) ListByOwner(ctx context.Context, ownerID uint, page, pageSize int) ([]models.TripRecord, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	query := s.db.WithContext(ctx).Model(&models.TripRecord{}).Where("user_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.TripRecord
	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListAllByOwner 当前用户全部记录（用于汇总）
func (s *TripStore) ListAllByOwner(ctx context.Context, ownerID uint) ([]models.TripRecord, error) {
	var records []models.TripRecord
	err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("created_at DESC").Find(&records).Error
	return records, err
}
