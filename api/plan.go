package api

import (
	"tripplanner/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler 行程规划处理器
type PlanHandler struct {
	planner *service.Planner
}

// NewPlanHandler 创建行程规划处理器
func NewPlanHandler(planner *service.Planner) *PlanHandler {
	return &PlanHandler{planner: planner}
}

// Plan 生成行程
// @Summary AI 生成行程
// @Description 根据一句话需求或结构化条件生成完整行程，预算由行程项重新汇总。生成结果不会自动保存，需再调用保存接口。
// @Tags 行程规划
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.PlanRequest true "规划条件"
// @Success 200 {object} Response{data=models.Trip} "生成成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 422 {object} Response "AI返回的行程结构不合法"
// @Failure 429 {object} Response "请求过于频繁"
// @Failure 502 {object} Response "AI服务调用失败或返回内容无法解析"
// @Router /api/v1/plan [post]
func (h *PlanHandler) Plan(c *gin.Context) {
	var req service.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	trip, err := h.planner.Synthesize(c.Request.Context(), req)
	if err != nil {
		ServiceError(c, err, "行程生成失败，请稍后重试")
		return
	}

	Success(c, trip)
}
