package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tripplanner/models"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// PlanRequest 行程规划请求
type PlanRequest struct {
	Prompt      string           `json:"prompt" example:"五一带孩子去东京玩5天，喜欢美食和动漫"`
	Destination string           `json:"destination" example:"日本东京"`
	Days        int              `json:"days" example:"5"`
	Budget      *decimal.Decimal `json:"budget,omitempty" swaggertype:"number" example:"10000"`
	People      int              `json:"people" example:"2"`
	Tags        []string         `json:"tags,omitempty"`
	StartDate   string           `json:"startDate,omitempty" example:"2026-05-01"`
	Currency    models.Currency  `json:"currency,omitempty" example:"CNY"`
}

// Planner 调用文本生成服务合成完整行程
type Planner struct {
	gen     TextGenerator
	logger  *log.Logger
	maxDays int
	now     func() time.Time
}

// NewPlanner 创建规划器，maxDays <= 0 时不限制天数上限
func NewPlanner(gen TextGenerator, logger *log.Logger, maxDays int) *Planner {
	return &Planner{gen: gen, logger: logger, maxDays: maxDays, now: time.Now}
}

const plannerRole = "你是专业旅行规划师。请只输出一个符合下列 JSON Schema 的 JSON 对象，不要包含任何多余文本、注释或 Markdown。"

const plannerRulesTemplate = `规划要求：
1. 日期使用 YYYY-MM-DD，days 从 startDate 开始逐日连续，endDate 为最后一天；时间使用 24 小时制 HH:MM，每天按时间顺序排列。
2. type 只能是 %s 之一；budget.currency 只能是 %s 之一。
3. 第一天包含前往目的地的交通，最后一天包含返程交通。
4. 住宿晚数为天数减 1，每晚一条 hotel 行程项，最后一天不安排住宿。
5. 三餐分别安排在 07:00-09:00、11:30-13:30、17:30-19:30 之间。
6. costEstimate 为全部出行人数的合计金额，单位与 budget.currency 一致，不要写单位或符号。
7. 地点尽量给出 name 和 address，知道坐标时给出 WGS84 的 lat/lng。
8. budget.breakdown 按类别汇总，totalEstimate 为全部费用之和，尽量控制在用户预算之内。`

// plannerRules 枚举取自 models，与校验和 Schema 保持一致
var plannerRules = fmt.Sprintf(plannerRulesTemplate, joinEnum(models.ItemTypes()), joinEnum(models.Currencies()))

func joinEnum[T ~string](values []T) string {
	return strings.Join(lo.Map(values, func(v T, _ int) string { return string(v) }), "、")
}

// BuildMessages 构造系统提示词与用户提示词
func (p *Planner) BuildMessages(req PlanRequest) []Message {
	system := strings.Join([]string{plannerRole, TripSchemaJSON(), plannerRules}, "\n\n")
	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: userPrompt(req)},
	}
}

func userPrompt(req PlanRequest) string {
	var parts []string
	if req.Destination != "" {
		parts = append(parts, "目的地:"+req.Destination)
	}
	if req.Days > 0 {
		parts = append(parts, fmt.Sprintf("天数:%d", req.Days))
	}
	if req.Budget != nil {
		parts = append(parts, fmt.Sprintf("预算:%s%s", req.Budget.String(), req.Currency))
	}
	if req.People > 0 {
		parts = append(parts, fmt.Sprintf("人数:%d", req.People))
	}
	if len(req.Tags) > 0 {
		parts = append(parts, "偏好:"+strings.Join(req.Tags, ","))
	}
	if req.StartDate != "" {
		parts = append(parts, "出发日期:"+req.StartDate)
	}
	parts = append(parts, "币种:"+string(req.Currency))

	var b strings.Builder
	b.WriteString(strings.Join(parts, "; "))
	b.WriteString(".\n")
	if req.Prompt != "" {
		b.WriteString("用户需求：")
		b.WriteString(req.Prompt)
		b.WriteString("\n")
	}
	b.WriteString("输出须包含：每日行程(时间顺序、含地点名与可选坐标)、住宿与交通建议、预算估算(总额与分类breakdown)。")
	return b.String()
}

// normalize 校验并整理请求，不合法时返回 ErrInvalidRequest
func (p *Planner) normalize(req PlanRequest) (PlanRequest, error) {
	req.Prompt = strings.TrimSpace(req.Prompt)
	req.Destination = strings.TrimSpace(req.Destination)
	req.StartDate = strings.TrimSpace(req.StartDate)
	req.Tags = lo.Filter(lo.Map(req.Tags, func(t string, _ int) string { return strings.TrimSpace(t) }),
		func(t string, _ int) bool { return t != "" })

	if req.Prompt == "" && req.Destination == "" {
		return req, invalidRequest("需求描述和目的地不能同时为空")
	}
	if req.Days < 0 {
		return req, invalidRequest("天数不能为负数")
	}
	if p.maxDays > 0 && req.Days > p.maxDays {
		return req, invalidRequest("天数应在 1 到 %d 之间", p.maxDays)
	}
	if req.People < 0 {
		return req, invalidRequest("人数不能为负数")
	}
	if req.Budget != nil && req.Budget.IsNegative() {
		return req, invalidRequest("预算不能为负数")
	}
	if req.StartDate != "" {
		if _, err := models.ParseDate(req.StartDate); err != nil {
			return req, invalidRequest("出发日期格式应为 YYYY-MM-DD")
		}
	}
	if req.Currency == "" {
		req.Currency = models.CurrencyCNY
	}
	if !req.Currency.Valid() {
		return req, invalidRequest("不支持的币种 %s", req.Currency)
	}
	return req, nil
}

// Synthesize 根据请求生成一份预算已闭合的行程。
// 只调用一次文本生成服务，不重试；ctx 结束后到达的结果直接丢弃。
func (p *Planner) Synthesize(ctx context.Context, req PlanRequest) (*models.Trip, error) {
	req, err := p.normalize(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	text, err := p.gen.Generate(ctx, p.BuildMessages(req))
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		if errors.Is(err, ErrUpstreamCallFailed) || errors.Is(err, ErrMalformedResponse) {
			return nil, err
		}
		return nil, &UpstreamError{Err: err}
	}
	p.logger.Info("行程生成完成", "destination", req.Destination, "days", req.Days, "latency", time.Since(start))

	doc, err := ExtractJSON(text)
	if err != nil {
		p.logger.Warn("AI返回内容无法解析", "error", err)
		return nil, err
	}
	if problems := models.ValidateDocument(doc); len(problems) > 0 {
		p.logger.Warn("AI返回的行程结构不合法", "problems", len(problems))
		return nil, &SchemaError{Problems: problems}
	}
	trip, err := models.DecodeTrip(doc)
	if err != nil {
		return nil, &SchemaError{Problems: []string{err.Error()}}
	}

	p.finalize(trip, req)
	return trip, nil
}

// finalize 服务端字段以服务端为准：新 id、时间戳、偏好，预算从行程项重新计算
func (p *Planner) finalize(trip *models.Trip, req PlanRequest) {
	currency := trip.Budget.Currency
	if !currency.Valid() {
		currency = req.Currency
	}
	trip.Budget = RecomputeBudget(trip.Days, currency)

	trip.ID = uuid.NewString()
	trip.UserID = ""
	now := p.now()
	trip.CreatedAt, _ = createdStamp(trip.CreatedAt, now)
	trip.UpdatedAt = now.UTC().Format(time.RFC3339)
	if trip.Preferences == nil && (req.People > 0 || len(req.Tags) > 0) {
		trip.Preferences = &models.Preferences{People: req.People, Tags: req.Tags}
	}
}
