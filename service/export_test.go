package service

import (
	"strings"
	"testing"
	"time"

	"tripplanner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFormatAmount(t *testing.T) {
	s := FormatAmount(dec("1234.5"), models.CurrencyCNY)
	assert.Contains(t, s, "1,234.50")

	assert.Contains(t, FormatAmount(dec("12"), models.CurrencyUSD), "12.00")
	assert.Equal(t, "12.00 ", FormatAmount(dec("12"), ""))
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "景点", TypeName(models.ItemTypeSight))
	assert.Equal(t, "住宿", TypeName(models.ItemTypeHotel))
	assert.Equal(t, "shopping", TypeName("shopping"))
}

func TestBuildTripWorkbook(t *testing.T) {
	trip := sampleTrip()
	buf, err := BuildTripWorkbook(trip)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"行程", "预算"}, f.GetSheetList())

	rows, err := f.GetRows("行程")
	require.NoError(t, err)
	require.Len(t, rows, 1+6+1)
	assert.Equal(t, []string{"日期", "时间", "类型", "标题", "地点", "预估费用", "备注"}, rows[0])
	assert.Equal(t, "2026-05-01", rows[1][0])
	assert.Equal(t, "交通", rows[1][2])
	assert.Equal(t, "飞往东京", rows[1][3])
	assert.Equal(t, "合计", rows[7][0])

	total, err := f.GetCellValue("行程", "F8")
	require.NoError(t, err)
	assert.Equal(t, "5180", total)

	category, _ := f.GetCellValue("预算", "A2")
	share, _ := f.GetCellValue("预算", "C2")
	assert.Equal(t, models.LabelTransport, category)
	assert.Equal(t, "77%", share)
	last, _ := f.GetCellValue("预算", "A5")
	assert.Equal(t, "合计", last)
}

type fixedFinder string

func (f fixedFinder) GetTimezoneName(_, _ float64) string { return string(f) }

func calendarTrip() *models.Trip {
	lat, lng := 35.68, 139.76
	days := []models.Day{{Date: "2026-05-01", Items: []models.Item{
		{Type: models.ItemTypeSight, Title: "自由活动"},
		{Time: "09:30", Type: models.ItemTypeFood, Title: "早餐", Note: "酒店自助", CostEstimate: costPtr("120")},
		{Time: "09:00", Type: models.ItemTypeTransport, Title: "成田快线", CostEstimate: costPtr("3070"),
			Location: &models.Location{Name: "成田机场", Lat: &lat, Lng: &lng}},
	}}}
	return &models.Trip{
		ID: "trip-1", Title: "东京", Destination: "东京", StartDate: "2026-05-01", EndDate: "2026-05-01",
		Days: days, Budget: RecomputeBudget(days, models.CurrencyJPY),
	}
}

func TestCalendarExporter_Build(t *testing.T) {
	exp := NewCalendarExporterWithFinder(fixedFinder("Asia/Tokyo"), time.UTC, discardLogger())
	trip := calendarTrip()

	loc := exp.TripLocation(trip)
	assert.Equal(t, "Asia/Tokyo", loc.String())

	out, err := exp.Build(trip, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	ical := strings.ReplaceAll(out, "\r\n ", "")

	assert.Contains(t, ical, "BEGIN:VCALENDAR")
	assert.Contains(t, ical, "X-WR-TIMEZONE:Asia/Tokyo")
	assert.Equal(t, 3, strings.Count(ical, "BEGIN:VEVENT"))
	assert.Contains(t, ical, "UID:trip-1-0-0@tripplanner")
	assert.Contains(t, ical, "SUMMARY:[交通] 成田快线")

	// 09:00 东京 = 00:00Z，下一项 09:30 开始，事件在 09:30 结束
	assert.Contains(t, ical, "DTSTART:20260501T000000Z")
	assert.Contains(t, ical, "DTEND:20260501T003000Z")
	// 最后一个有时间的行程项默认一小时
	assert.Contains(t, ical, "DTEND:20260501T013000Z")
	// 没有时间的行程项为全天事件
	assert.Contains(t, ical, "DTSTART;VALUE=DATE:20260501")
	assert.Contains(t, ical, "GEO:35.68;139.76")
}

func TestCalendarExporter_Fallback(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	exp := NewCalendarExporterWithFinder(fixedFinder(""), shanghai, discardLogger())
	assert.Equal(t, shanghai, exp.TripLocation(calendarTrip()))

	noFinder := NewCalendarExporterWithFinder(nil, shanghai, discardLogger())
	assert.Equal(t, shanghai, noFinder.TripLocation(calendarTrip()))

	bad := calendarTrip()
	bad.Days[0].Date = "5月1日"
	_, err = exp.Build(bad, time.Now())
	assert.Error(t, err)
}
