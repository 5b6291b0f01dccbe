package api

import (
	"tripplanner/middleware"
	"tripplanner/models"
	"tripplanner/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ItemRequest 新增/编辑行程项请求
type ItemRequest struct {
	Time     string           `json:"time" example:"12:00"`
	Type     models.ItemType  `json:"type" example:"food"`
	Title    string           `json:"title" example:"筑地市场午餐"`
	Note     string           `json:"note" example:"海鲜丼"`
	Location *models.Location `json:"location"`
	Cost     *decimal.Decimal `json:"cost" swaggertype:"number" example:"120"`
}

func (r ItemRequest) input() service.ItemInput {
	return service.ItemInput{
		Time:     r.Time,
		Type:     r.Type,
		Title:    r.Title,
		Note:     r.Note,
		Location: r.Location,
		Cost:     r.Cost,
	}
}

// AddItem 记一笔
// @Summary 新增行程项
// @Description 在指定天末尾追加行程项，预算同步增加。day 从 0 开始。
// @Tags 行程项
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "行程ID"
// @Param day path int true "天序号（从 0 开始）"
// @Param request body ItemRequest true "行程项"
// @Success 200 {object} Response{data=models.Trip} "添加成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "行程不存在"
// @Failure 409 {object} Response "预算与行程项不一致，需先重算预算"
// @Router /api/v1/trips/{id}/days/{day}/items [post]
func (h *TripHandler) AddItem(c *gin.Context) {
	day, ok := pathIndex(c, "day")
	if !ok {
		return
	}
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	h.mutate(c, service.ItemMutation{Kind: service.MutationAdd, Day: &day, Item: req.input()}, "添加成功")
}

// EditItem 编辑行程项
// @Summary 编辑行程项
// @Description 替换指定位置的行程项，预算按新旧金额与类别同步调整
// @Tags 行程项
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "行程ID"
// @Param day path int true "天序号（从 0 开始）"
// @Param item path int true "行程项序号（从 0 开始）"
// @Param request body ItemRequest true "行程项"
// @Success 200 {object} Response{data=models.Trip} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "行程不存在"
// @Failure 409 {object} Response "预算与行程项不一致，需先重算预算"
// @Router /api/v1/trips/{id}/days/{day}/items/{item} [put]
func (h *TripHandler) EditItem(c *gin.Context) {
	day, ok := pathIndex(c, "day")
	if !ok {
		return
	}
	index, ok := pathIndex(c, "item")
	if !ok {
		return
	}
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	h.mutate(c, service.ItemMutation{Kind: service.MutationEdit, Day: &day, Index: &index, Item: req.input()}, "更新成功")
}

// DeleteItem 删除行程项
// @Summary 删除行程项
// @Description 删除指定位置的行程项，预算同步扣减，扣到 0 的分类会被移除
// @Tags 行程项
// @Produce json
// @Security BearerAuth
// @Param id path string true "行程ID"
// @Param day path int true "天序号（从 0 开始）"
// @Param item path int true "行程项序号（从 0 开始）"
// @Success 200 {object} Response{data=models.Trip} "删除成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "行程不存在"
// @Router /api/v1/trips/{id}/days/{day}/items/{item} [delete]
func (h *TripHandler) DeleteItem(c *gin.Context) {
	day, ok := pathIndex(c, "day")
	if !ok {
		return
	}
	index, ok := pathIndex(c, "item")
	if !ok {
		return
	}

	h.mutate(c, service.ItemMutation{Kind: service.MutationDelete, Day: &day, Index: &index}, "删除成功")
}

func (h *TripHandler) mutate(c *gin.Context, m service.ItemMutation, message string) {
	userID := middleware.GetCurrentUserID(c)

	trip, err := h.trips.Mutate(c.Request.Context(), userID, c.Param("id"), m)
	if err != nil {
		ServiceError(c, err, "修改失败")
		return
	}

	SuccessWithMessage(c, message, trip)
}
