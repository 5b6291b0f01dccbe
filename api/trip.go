package api

import (
	"strconv"

	"tripplanner/middleware"
	"tripplanner/models"
	"tripplanner/service"

	"github.com/gin-gonic/gin"
)

// TripHandler 行程处理器
type TripHandler struct {
	trips *service.TripService
}

// NewTripHandler 创建行程处理器
func NewTripHandler(trips *service.TripService) *TripHandler {
	return &TripHandler{trips: trips}
}

// ListTripsRequest 行程列表请求
type ListTripsRequest struct {
	Page     int `form:"page" example:"1"`
	PageSize int `form:"page_size" example:"10"`
}

// Create 保存行程
// @Summary 保存行程
// @Description 把生成（或手工编辑）的行程保存到当前用户名下。文档会重新校验，预算由行程项重新汇总。
// @Tags 行程
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Trip true "行程文档"
// @Success 200 {object} Response{data=models.Trip} "保存成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 422 {object} Response "行程结构不合法"
// @Router /api/v1/trips [post]
func (h *TripHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var trip models.Trip
	if err := c.ShouldBindJSON(&trip); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	saved, err := h.trips.Create(c.Request.Context(), userID, &trip)
	if err != nil {
		ServiceError(c, err, "保存失败")
		return
	}

	SuccessWithMessage(c, "保存成功", saved)
}

// List 行程列表
// @Summary 获取行程列表
// @Description 当前用户的行程，按创建时间倒序
// @Tags 行程
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} Response{data=PageResponse{list=[]models.TripListItem}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/trips [get]
func (h *TripHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ListTripsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	req.Page, req.PageSize = normalizePage(req.Page, req.PageSize)

	items, total, err := h.trips.List(c.Request.Context(), userID, req.Page, req.PageSize)
	if err != nil {
		ServiceError(c, err, "查询失败")
		return
	}

	Paged(c, items, total, req.Page, req.PageSize)
}

// Summary 预算汇总
// @Summary 获取预算汇总
// @Description 当前用户全部行程的总预算，以及金额最高的 5 个预算分类
// @Tags 行程
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.TripSummary} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/trips/summary [get]
func (h *TripHandler) Summary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	summary, err := h.trips.Summary(c.Request.Context(), userID)
	if err != nil {
		ServiceError(c, err, "查询失败")
		return
	}

	Success(c, summary)
}

// Get 行程详情
// @Summary 获取行程详情
// @Tags 行程
// @Produce json
// @Security BearerAuth
// @Param id path string true "行程ID"
// @Success 200 {object} Response{data=models.Trip} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "行程不存在"
// @Router /api/v1/trips/{id} [get]
func (h *TripHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	trip, err := h.trips.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		ServiceError(c, err, "查询失败")
		return
	}

	Success(c, trip)
}

// Update 替换行程
// @Summary 更新行程
// @Description 整体替换行程文档，id、所属用户与创建时间保持不变，预算由行程项重新汇总
// @Tags 行程
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "行程ID"
// @Param request body models.Trip true "行程文档"
// @Success 200 {object} Response{data=models.Trip} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "行程不存在"
// @Failure 422 {object} Response "行程结构不合法"
// @Router /api/v1/trips/{id} [put]
func (h *TripHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var trip models.Trip
	if err := c.ShouldBindJSON(&trip); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	updated, err := h.trips.Update(c.Request.Context(), userID, c.Param("id"), &trip)
	if err != nil {
		ServiceError(c, err, "更新失败")
		return
	}

	SuccessWithMessage(c, "更新成功", updated)
}

// Delete 删除行程
// @Summary 删除行程
// @Tags 行程
// @Produce json
// @Security BearerAuth
// @Param id path string true "行程ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "行程不存在"
// @Router /api/v1/trips/{id} [delete]
func (h *TripHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	if err := h.trips.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		ServiceError(c, err, "删除失败")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// RebuildBudget 重算预算
// @Summary 重算预算
// @Description 从全部行程项重新汇总预算，用于修复历史上与行程项对不上的预算
// @Tags 行程
// @Produce json
// @Security BearerAuth
// @Param id path string true "行程ID"
// @Success 200 {object} Response{data=models.Trip} "重算成功"
// @Failure 404 {object} Response "行程不存在"
// @Router /api/v1/trips/{id}/budget/rebuild [post]
func (h *TripHandler) RebuildBudget(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	trip, err := h.trips.RebuildBudget(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		ServiceError(c, err, "重算失败")
		return
	}

	SuccessWithMessage(c, "重算成功", trip)
}

func pathIndex(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		BadRequest(c, "无效的"+name)
		return 0, false
	}
	return n, true
}
