package router

import (
	"net/http"
	"time"

	"tripplanner/api"
	"tripplanner/config"
	_ "tripplanner/docs"
	"tripplanner/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers 路由用到的处理器
type Handlers struct {
	Plan   *api.PlanHandler
	Trip   *api.TripHandler
	Export *api.ExportHandler
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	r.Use(CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Format(time.RFC3339)})
	})

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth())
	{
		v1.POST("/plan", middleware.PlanRateLimit(cfg.RateLimit.PlanPerMinute), h.Plan.Plan)

		trips := v1.Group("/trips")
		{
			trips.POST("", h.Trip.Create)
			trips.GET("", h.Trip.List)
			trips.GET("/summary", h.Trip.Summary)
			trips.GET("/:id", h.Trip.Get)
			trips.PUT("/:id", h.Trip.Update)
			trips.DELETE("/:id", h.Trip.Delete)
			trips.POST("/:id/budget/rebuild", h.Trip.RebuildBudget)

			// 行程项（记一笔）
			trips.POST("/:id/days/:day/items", h.Trip.AddItem)
			trips.PUT("/:id/days/:day/items/:item", h.Trip.EditItem)
			trips.DELETE("/:id/days/:day/items/:item", h.Trip.DeleteItem)

			// 导出
			trips.GET("/:id/export/excel", h.Export.ExportExcel)
			trips.GET("/:id/export/ics", h.Export.ExportICS)
			trips.POST("/:id/email", h.Export.SendEmail)
		}
	}

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Content-Length", "Accept", "Accept-Encoding", "Authorization", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:   []string{"Content-Length", "Content-Disposition"},
		MaxAge:          12 * time.Hour,
	})
}
