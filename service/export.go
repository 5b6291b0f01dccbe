package service

import (
	"bytes"
	"fmt"
	"strings"

	"tripplanner/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.SimplifiedChinese)

// FormatAmount 按币种格式化金额，如 ¥ 1,234.00
func FormatAmount(amount decimal.Decimal, cur models.Currency) string {
	unit, err := currency.ParseISO(string(cur))
	if err != nil {
		return amount.StringFixed(2) + " " + string(cur)
	}
	f, _ := amount.Float64()
	return amountPrinter.Sprint(currency.Symbol(unit.Amount(f)))
}

// TypeName 行程项类型的中文名
func TypeName(t models.ItemType) string {
	switch t {
	case models.ItemTypeSight:
		return "景点"
	case models.ItemTypeFood:
		return "餐饮"
	case models.ItemTypeHotel:
		return "住宿"
	case models.ItemTypeTransport:
		return "交通"
	case models.ItemTypeActivity:
		return "活动"
	}
	return string(t)
}

func locationText(loc *models.Location) string {
	if loc == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	if loc.Name != "" {
		parts = append(parts, loc.Name)
	}
	if loc.Address != "" {
		parts = append(parts, loc.Address)
	}
	return strings.Join(parts, " ")
}

const (
	itinerarySheet = "行程"
	budgetSheet    = "预算"
)

// BuildTripWorkbook 生成行程 Excel：一张日程表，一张预算表
func BuildTripWorkbook(trip *models.Trip) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", itinerarySheet)
	if _, err := f.NewSheet(budgetSheet); err != nil {
		return nil, err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
		Border:    border,
	})
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})

	writeHeader := func(sheet string, headers []string) {
		for i, header := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, header)
			f.SetCellStyle(sheet, cell, cell, headerStyle)
		}
	}

	// 日程
	writeHeader(itinerarySheet, []string{"日期", "时间", "类型", "标题", "地点", "预估费用", "备注"})
	f.SetColWidth(itinerarySheet, "A", "B", 12)
	f.SetColWidth(itinerarySheet, "C", "C", 8)
	f.SetColWidth(itinerarySheet, "D", "E", 30)
	f.SetColWidth(itinerarySheet, "F", "F", 14)
	f.SetColWidth(itinerarySheet, "G", "G", 40)
	row := 2
	for _, day := range trip.Days {
		for _, it := range day.SortedItems() {
			cost, _ := it.Cost().Float64()
			values := []any{day.Date, it.Time, TypeName(it.Type), it.Title, locationText(it.Location), cost, it.Note}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(itinerarySheet, cell, v)
			}
			f.SetCellStyle(itinerarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), dataStyle)
			row++
		}
	}
	f.SetCellValue(itinerarySheet, fmt.Sprintf("A%d", row), "合计")
	f.MergeCell(itinerarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row))
	total, _ := trip.Budget.TotalEstimate.Float64()
	f.SetCellValue(itinerarySheet, fmt.Sprintf("F%d", row), total)
	f.SetCellValue(itinerarySheet, fmt.Sprintf("G%d", row), string(trip.Budget.Currency))
	f.SetCellStyle(itinerarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), summaryStyle)

	// 预算
	writeHeader(budgetSheet, []string{"分类", "预估金额", "占比", "备注"})
	f.SetColWidth(budgetSheet, "A", "C", 14)
	f.SetColWidth(budgetSheet, "D", "D", 30)
	for i, c := range trip.Budget.Breakdown {
		r := i + 2
		est, _ := c.Estimate.Float64()
		f.SetCellValue(budgetSheet, fmt.Sprintf("A%d", r), c.Category)
		f.SetCellValue(budgetSheet, fmt.Sprintf("B%d", r), est)
		f.SetCellValue(budgetSheet, fmt.Sprintf("C%d", r), fmt.Sprintf("%d%%", percentOf(c.Estimate, trip.Budget.TotalEstimate)))
		f.SetCellValue(budgetSheet, fmt.Sprintf("D%d", r), c.Note)
		f.SetCellStyle(budgetSheet, fmt.Sprintf("A%d", r), fmt.Sprintf("D%d", r), dataStyle)
	}
	r := len(trip.Budget.Breakdown) + 2
	f.SetCellValue(budgetSheet, fmt.Sprintf("A%d", r), "合计")
	f.SetCellValue(budgetSheet, fmt.Sprintf("B%d", r), total)
	f.SetCellValue(budgetSheet, fmt.Sprintf("C%d", r), FormatAmount(trip.Budget.TotalEstimate, trip.Budget.Currency))
	f.MergeCell(budgetSheet, fmt.Sprintf("C%d", r), fmt.Sprintf("D%d", r))
	f.SetCellStyle(budgetSheet, fmt.Sprintf("A%d", r), fmt.Sprintf("D%d", r), summaryStyle)

	return f.WriteToBuffer()
}
