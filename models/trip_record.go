package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TripRecord 行程存储记录。trip_json 保存完整文档，其余平铺字段是列表用的冗余投影，每次写入都与文档同步。
type TripRecord struct {
	ID          string         `json:"id" gorm:"primaryKey;size:36"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	Title       string         `json:"title" gorm:"size:200;not null"`
	Destination string         `json:"destination" gorm:"size:200;not null"`
	StartDate   string         `json:"start_date" gorm:"size:10;not null"` // YYYY-MM-DD
	EndDate     string         `json:"end_date" gorm:"size:10;not null"`   // YYYY-MM-DD
	TripJSON    string         `json:"-" gorm:"column:trip_json;type:longtext;not null"`
	CreatedAt   time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (TripRecord) TableName() string {
	return "trips"
}

// NewTripRecord 由行程文档生成存储记录
func NewTripRecord(userID uint, trip *Trip) (*TripRecord, error) {
	rec := &TripRecord{ID: trip.ID, UserID: userID}
	if err := rec.SetTrip(trip); err != nil {
		return nil, err
	}
	return rec, nil
}

// SetTrip 写入文档并同步平铺字段
func (r *TripRecord) SetTrip(trip *Trip) error {
	b, err := json.Marshal(trip)
	if err != nil {
		return err
	}
	r.TripJSON = string(b)
	r.Title = trip.Title
	r.Destination = trip.Destination
	r.StartDate = trip.StartDate
	r.EndDate = trip.EndDate
	return nil
}

// Trip 解析 trip_json
func (r *TripRecord) Trip() (*Trip, error) {
	var trip Trip
	if err := json.Unmarshal([]byte(r.TripJSON), &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// TripListItem 行程列表项（不含完整文档）
type TripListItem struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Destination   string          `json:"destination"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	Currency      Currency        `json:"currency,omitempty"`
	TotalEstimate decimal.Decimal `json:"total_estimate"`
	CreatedAt     string          `json:"created_at"`
}

// ListItem 由记录生成列表项，金额取自文档
func (r *TripRecord) ListItem() (TripListItem, error) {
	trip, err := r.Trip()
	if err != nil {
		return TripListItem{}, err
	}
	return TripListItem{
		ID:            r.ID,
		Title:         r.Title,
		Destination:   r.Destination,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Currency:      trip.Budget.Currency,
		TotalEstimate: trip.Budget.TotalEstimate,
		CreatedAt:     r.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
