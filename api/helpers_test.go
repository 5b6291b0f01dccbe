package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"tripplanner/database"
	"tripplanner/models"
	"tripplanner/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

func setUserIDMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestTripService() *service.TripService {
	return service.NewTripService(database.NewTripStore(database.DB), service.NewMemorySummaryCache(time.Minute), testLogger())
}

const storedTripID = "3b8e6c1e-5d7a-4f0e-9a51-6f1f7e7b2a10"

var tripColumns = []string{"id", "user_id", "title", "destination", "start_date", "end_date", "trip_json", "created_at", "updated_at", "deleted_at"}

func money(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// storedTrip 预算闭合的两日成都行程
func storedTrip() *models.Trip {
	days := []models.Day{
		{Date: "2026-10-01", Items: []models.Item{
			{Time: "08:00", Type: models.ItemTypeTransport, Title: "高铁前往成都", CostEstimate: money(500)},
			{Time: "12:00", Type: models.ItemTypeFood, Title: "火锅", CostEstimate: money(300)},
			{Time: "21:00", Type: models.ItemTypeHotel, Title: "春熙路酒店", CostEstimate: money(400)},
		}},
		{Date: "2026-10-02", Items: []models.Item{
			{Time: "09:00", Type: models.ItemTypeSight, Title: "大熊猫基地", CostEstimate: money(55)},
			{Time: "18:00", Type: models.ItemTypeTransport, Title: "高铁返程", CostEstimate: money(500)},
		}},
	}
	return &models.Trip{
		ID:          storedTripID,
		UserID:      "1",
		Title:       "成都两日游",
		Destination: "成都",
		StartDate:   "2026-10-01",
		EndDate:     "2026-10-02",
		Days:        days,
		Budget:      service.RecomputeBudget(days, models.CurrencyCNY),
		CreatedAt:   "2026-09-01T00:00:00Z",
		UpdatedAt:   "2026-09-01T00:00:00Z",
	}
}

func tripRows(t *testing.T, trips ...*models.Trip) *sqlmock.Rows {
	t.Helper()
	rows := sqlmock.NewRows(tripColumns)
	now := time.Now()
	for _, trip := range trips {
		b, err := json.Marshal(trip)
		require.NoError(t, err)
		rows.AddRow(trip.ID, 1, trip.Title, trip.Destination, trip.StartDate, trip.EndDate, string(b), now, now, nil)
	}
	return rows
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func sqlmockEmptyRows() *sqlmock.Rows {
	return sqlmock.NewRows(tripColumns)
}
