package api

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tripplanner/middleware"
	"tripplanner/service"

	"github.com/gin-gonic/gin"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	trips    *service.TripService
	calendar *service.CalendarExporter
	email    *service.EmailService
}

// NewExportHandler 创建导出处理器
func NewExportHandler(trips *service.TripService, calendar *service.CalendarExporter, email *service.EmailService) *ExportHandler {
	return &ExportHandler{trips: trips, calendar: calendar, email: email}
}

// SendEmailRequest 发送行程邮件请求
type SendEmailRequest struct {
	Email string `json:"email" binding:"required,email" example:"user@example.com"`
}

func attachment(c *gin.Context, name string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(name)))
}

// ExportExcel 导出行程为 Excel
// @Summary 导出 Excel
// @Description 导出行程为 Excel 文件，包含日程与预算两张表
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path string true "行程ID"
// @Success 200 {file} file "Excel 文件"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "行程不存在"
// @Router /api/v1/trips/{id}/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	trip, err := h.trips.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		ServiceError(c, err, "查询失败")
		return
	}

	buf, err := service.BuildTripWorkbook(trip)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成 Excel 失败"))
		return
	}

	attachment(c, fmt.Sprintf("%s_%s.xlsx", trip.Title, trip.StartDate))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportICS 导出行程为日历
// @Summary 导出日历
// @Description 导出行程为 iCalendar 文件，可导入手机或邮箱日历。时区按行程项坐标推断。
// @Tags 导出
// @Produce text/calendar
// @Security BearerAuth
// @Param id path string true "行程ID"
// @Success 200 {file} file "ics 文件"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "行程不存在"
// @Router /api/v1/trips/{id}/export/ics [get]
func (h *ExportHandler) ExportICS(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	trip, err := h.trips.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		ServiceError(c, err, "查询失败")
		return
	}

	ics, err := h.calendar.Build(trip, time.Now())
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成日历失败"))
		return
	}

	attachment(c, trip.Title+".ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}

// SendEmail 发送行程邮件
// @Summary 发送行程邮件
// @Description 把行程（附日历文件）发送到指定邮箱
// @Tags 导出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "行程ID"
// @Param request body SendEmailRequest true "收件邮箱"
// @Success 200 {object} Response "发送成功"
// @Failure 400 {object} Response "请求参数错误或邮件服务未启用"
// @Failure 404 {object} Response "行程不存在"
// @Router /api/v1/trips/{id}/email [post]
func (h *ExportHandler) SendEmail(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if !h.email.Enabled() {
		BadRequest(c, "邮件服务未启用")
		return
	}

	trip, err := h.trips.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		ServiceError(c, err, "查询失败")
		return
	}

	ics, err := h.calendar.Build(trip, time.Now())
	if err != nil {
		ics = ""
	}
	if err := h.email.SendItinerary(req.Email, trip, ics); err != nil {
		InternalError(c, SafeErrorMessage(err, "发送邮件失败"))
		return
	}

	SuccessWithMessage(c, "发送成功", nil)
}
