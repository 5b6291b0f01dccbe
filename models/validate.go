package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidClock 是否为 HH:MM 格式的时间
func ValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// ParseDate 解析 YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Conforms 判断任意解析结果是否符合 Trip 结构
func Conforms(v any) bool {
	return len(ValidateDocument(v)) == 0
}

// ValidateDocument 校验任意 JSON 解析值是否符合 Trip 结构，返回全部问题（为空表示通过）。
// 只做判定，不做修复。
func ValidateDocument(v any) []string {
	var c checker
	root, ok := v.(map[string]any)
	if !ok {
		c.fail("", "必须是 JSON 对象")
		return c.problems
	}

	// id / createdAt / updatedAt 由服务端补齐，出现时必须是字符串
	c.optionalString(root, "", "id")
	c.requireString(root, "", "title")
	c.requireString(root, "", "destination")
	start, startOK := c.requireDate(root, "", "startDate")
	end, endOK := c.requireDate(root, "", "endDate")
	c.optionalString(root, "", "createdAt")
	c.optionalString(root, "", "updatedAt")
	c.optionalString(root, "", "userId")

	days, ok := c.requireArray(root, "", "days")
	if ok {
		if len(days) == 0 {
			c.fail("days", "至少包含一天")
		}
		for i, d := range days {
			date, dateOK := c.checkDay(d, fmt.Sprintf("days[%d]", i))
			if dateOK && startOK {
				want := start.AddDate(0, 0, i)
				if !date.Equal(want) {
					c.fail(fmt.Sprintf("days[%d].date", i), "应为 "+want.Format(DateLayout))
				}
			}
		}
		if startOK && endOK && len(days) > 0 {
			if want := start.AddDate(0, 0, len(days)-1); !end.Equal(want) {
				c.fail("endDate", fmt.Sprintf("与天数不符，应为 %s", want.Format(DateLayout)))
			}
		}
	}

	if budget, ok := c.requireObject(root, "", "budget"); ok {
		c.checkBudget(budget, "budget")
	}

	if raw, ok := root["preferences"]; ok && raw != nil {
		c.checkPreferences(raw, "preferences")
	}
	return c.problems
}

// ValidateTrip 校验结构化的行程（先转成 JSON 解析值再走同一套校验）
func ValidateTrip(trip *Trip) []string {
	if trip == nil {
		return []string{"必须是 JSON 对象"}
	}
	b, err := json.Marshal(trip)
	if err != nil {
		return []string{err.Error()}
	}
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return []string{err.Error()}
	}
	return ValidateDocument(v)
}

// DecodeTrip 将已通过校验的解析值转换为 Trip
func DecodeTrip(v any) (*Trip, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var trip Trip
	if err := json.Unmarshal(b, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

type checker struct {
	problems []string
}

func (c *checker) fail(path, msg string) {
	if path == "" {
		c.problems = append(c.problems, msg)
		return
	}
	c.problems = append(c.problems, path+": "+msg)
}

func join(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func (c *checker) requireString(obj map[string]any, parent, key string) (string, bool) {
	path := join(parent, key)
	raw, ok := obj[key]
	if !ok || raw == nil {
		c.fail(path, "缺少字段")
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		c.fail(path, "必须是字符串")
		return "", false
	}
	if strings.TrimSpace(s) == "" {
		c.fail(path, "不能为空")
		return "", false
	}
	return s, true
}

func (c *checker) optionalString(obj map[string]any, parent, key string) (string, bool) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		c.fail(join(parent, key), "必须是字符串")
		return "", false
	}
	return s, true
}

func (c *checker) requireDate(obj map[string]any, parent, key string) (time.Time, bool) {
	s, ok := c.requireString(obj, parent, key)
	if !ok {
		return time.Time{}, false
	}
	t, err := ParseDate(s)
	if err != nil {
		c.fail(join(parent, key), "日期格式应为 YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}

func (c *checker) requireArray(obj map[string]any, parent, key string) ([]any, bool) {
	path := join(parent, key)
	raw, ok := obj[key]
	if !ok || raw == nil {
		c.fail(path, "缺少字段")
		return nil, false
	}
	arr, ok := raw.([]any)
	if !ok {
		c.fail(path, "必须是数组")
		return nil, false
	}
	return arr, true
}

func (c *checker) requireObject(obj map[string]any, parent, key string) (map[string]any, bool) {
	path := join(parent, key)
	raw, ok := obj[key]
	if !ok || raw == nil {
		c.fail(path, "缺少字段")
		return nil, false
	}
	m, ok := raw.(map[string]any)
	if !ok {
		c.fail(path, "必须是对象")
		return nil, false
	}
	return m, true
}

func (c *checker) requireAmount(obj map[string]any, parent, key string) {
	path := join(parent, key)
	raw, ok := obj[key]
	if !ok || raw == nil {
		c.fail(path, "缺少字段")
		return
	}
	c.checkAmount(raw, path)
}

func (c *checker) checkAmount(raw any, path string) {
	d, ok := toDecimal(raw)
	if !ok {
		c.fail(path, "必须是数字")
		return
	}
	if d.IsNegative() {
		c.fail(path, "不能为负数")
	}
}

func (c *checker) checkDay(raw any, path string) (time.Time, bool) {
	day, ok := raw.(map[string]any)
	if !ok {
		c.fail(path, "必须是对象")
		return time.Time{}, false
	}
	date, dateOK := c.requireDate(day, path, "date")
	items, ok := c.requireArray(day, path, "items")
	if ok {
		for i, it := range items {
			c.checkItem(it, fmt.Sprintf("%s.items[%d]", path, i))
		}
	}
	return date, dateOK
}

func (c *checker) checkItem(raw any, path string) {
	item, ok := raw.(map[string]any)
	if !ok {
		c.fail(path, "必须是对象")
		return
	}
	if t, ok := c.requireString(item, path, "type"); ok && !ItemType(t).Valid() {
		c.fail(join(path, "type"), fmt.Sprintf("未知类型 %q", t))
	}
	c.requireString(item, path, "title")
	if tm, ok := c.optionalString(item, path, "time"); ok && tm != "" && !ValidClock(tm) {
		c.fail(join(path, "time"), "时间格式应为 HH:MM")
	}
	c.optionalString(item, path, "note")
	if raw, ok := item["costEstimate"]; ok && raw != nil {
		c.checkAmount(raw, join(path, "costEstimate"))
	}
	if raw, ok := item["location"]; ok && raw != nil {
		c.checkLocation(raw, join(path, "location"))
	}
}

func (c *checker) checkLocation(raw any, path string) {
	loc, ok := raw.(map[string]any)
	if !ok {
		c.fail(path, "必须是对象")
		return
	}
	c.optionalString(loc, path, "name")
	c.optionalString(loc, path, "address")
	c.checkCoordinate(loc, path, "lat", 90)
	c.checkCoordinate(loc, path, "lng", 180)
}

func (c *checker) checkCoordinate(loc map[string]any, parent, key string, limit float64) {
	raw, ok := loc[key]
	if !ok || raw == nil {
		return
	}
	d, ok := toDecimal(raw)
	if !ok {
		c.fail(join(parent, key), "必须是数字")
		return
	}
	if f := d.InexactFloat64(); f < -limit || f > limit {
		c.fail(join(parent, key), fmt.Sprintf("超出范围 [-%g, %g]", limit, limit))
	}
}

func (c *checker) checkBudget(budget map[string]any, path string) {
	if cur, ok := c.requireString(budget, path, "currency"); ok && !Currency(cur).Valid() {
		c.fail(join(path, "currency"), fmt.Sprintf("不支持的币种 %q", cur))
	}
	c.requireAmount(budget, path, "totalEstimate")
	entries, ok := c.requireArray(budget, path, "breakdown")
	if !ok {
		return
	}
	for i, raw := range entries {
		ep := fmt.Sprintf("%s.breakdown[%d]", path, i)
		entry, ok := raw.(map[string]any)
		if !ok {
			c.fail(ep, "必须是对象")
			continue
		}
		c.requireString(entry, ep, "category")
		c.requireAmount(entry, ep, "estimate")
		c.optionalString(entry, ep, "note")
	}
}

func (c *checker) checkPreferences(raw any, path string) {
	prefs, ok := raw.(map[string]any)
	if !ok {
		c.fail(path, "必须是对象")
		return
	}
	if people, ok := prefs["people"]; ok && people != nil {
		d, ok := toDecimal(people)
		if !ok || !d.IsInteger() || d.IsNegative() {
			c.fail(join(path, "people"), "必须是非负整数")
		}
	}
	if tags, ok := prefs["tags"]; ok && tags != nil {
		arr, ok := tags.([]any)
		if !ok {
			c.fail(join(path, "tags"), "必须是数组")
			return
		}
		for i, tag := range arr {
			if _, ok := tag.(string); !ok {
				c.fail(fmt.Sprintf("%s.tags[%d]", path, i), "必须是字符串")
			}
		}
	}
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	}
	return decimal.Decimal{}, false
}
