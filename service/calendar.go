package service

import (
	"fmt"
	"strings"
	"time"

	"tripplanner/models"

	ics "github.com/arran4/golang-ical"
	"github.com/charmbracelet/log"
	"github.com/ringsaturn/tzf"
)

// defaultEventDuration 行程项没有明确结束时间时的日历事件时长
const defaultEventDuration = time.Hour

// TimezoneFinder 由经纬度查时区名
type TimezoneFinder interface {
	GetTimezoneName(lng float64, lat float64) string
}

// CalendarExporter 把行程导出为 iCalendar
type CalendarExporter struct {
	finder   TimezoneFinder
	fallback *time.Location
	logger   *log.Logger
}

// NewCalendarExporter 创建日历导出器。时区数据加载失败时所有行程都使用 fallback 时区。
func NewCalendarExporter(fallback string, logger *log.Logger) *CalendarExporter {
	loc, err := time.LoadLocation(fallback)
	if err != nil {
		logger.Warn("默认时区无效，改用 UTC", "timezone", fallback, "error", err)
		loc = time.UTC
	}
	exp := &CalendarExporter{fallback: loc, logger: logger}
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		logger.Warn("时区数据加载失败", "error", err)
		return exp
	}
	exp.finder = finder
	return exp
}

// NewCalendarExporterWithFinder 使用指定的时区查询
func NewCalendarExporterWithFinder(finder TimezoneFinder, fallback *time.Location, logger *log.Logger) *CalendarExporter {
	return &CalendarExporter{finder: finder, fallback: fallback, logger: logger}
}

// TripLocation 行程所在时区：取第一个带坐标的行程项
func (e *CalendarExporter) TripLocation(trip *models.Trip) *time.Location {
	if e.finder == nil {
		return e.fallback
	}
	for _, it := range AllItems(trip.Days) {
		if !it.Location.HasCoordinates() {
			continue
		}
		name := e.finder.GetTimezoneName(*it.Location.Lng, *it.Location.Lat)
		if name == "" {
			continue
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			e.logger.Warn("无法加载时区", "timezone", name, "error", err)
			continue
		}
		return loc
	}
	return e.fallback
}

// Build 生成 iCalendar 文本。有时间的行程项生成定时事件，到下一项开始或默认一小时结束；没有时间的生成全天事件。
func (e *CalendarExporter) Build(trip *models.Trip, now time.Time) (string, error) {
	loc := e.TripLocation(trip)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//tripplanner//行程//ZH")
	cal.SetXWRCalName(trip.Title)
	cal.SetXWRTimezone(loc.String())

	for d, day := range trip.Days {
		date, err := time.ParseInLocation(models.DateLayout, day.Date, loc)
		if err != nil {
			return "", fmt.Errorf("第 %d 天日期无效: %w", d+1, err)
		}
		items := day.SortedItems()
		for i, it := range items {
			event := cal.AddEvent(fmt.Sprintf("%s-%d-%d@tripplanner", trip.ID, d, i))
			event.SetDtStampTime(now)
			event.SetSummary(fmt.Sprintf("[%s] %s", TypeName(it.Type), it.Title))
			if desc := eventDescription(it, trip.Budget.Currency); desc != "" {
				event.SetDescription(desc)
			}
			if text := locationText(it.Location); text != "" {
				event.SetLocation(text)
			}
			if it.Location.HasCoordinates() {
				event.SetGeo(*it.Location.Lat, *it.Location.Lng)
			}

			if it.Time == "" {
				event.SetAllDayStartAt(date)
				event.SetAllDayEndAt(date.AddDate(0, 0, 1))
				continue
			}
			start := atClock(date, it.Time, loc)
			end := start.Add(defaultEventDuration)
			if i+1 < len(items) && items[i+1].Time != "" {
				if next := atClock(date, items[i+1].Time, loc); next.After(start) && next.Before(end) {
					end = next
				}
			}
			event.SetStartAt(start)
			event.SetEndAt(end)
		}
	}
	return cal.Serialize(), nil
}

func atClock(date time.Time, clock string, loc *time.Location) time.Time {
	t, err := time.ParseInLocation("15:04", clock, loc)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

func eventDescription(it models.Item, cur models.Currency) string {
	var lines []string
	if it.Note != "" {
		lines = append(lines, it.Note)
	}
	if it.CostEstimate != nil {
		lines = append(lines, "预估费用: "+FormatAmount(*it.CostEstimate, cur))
	}
	return strings.Join(lines, "\n")
}
