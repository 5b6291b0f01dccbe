package cmd

import (
	"fmt"
	"strings"

	"tripplanner/api"
	"tripplanner/config"
	"tripplanner/database"
	"tripplanner/middleware"
	"tripplanner/router"
	"tripplanner/service"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var flagPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&flagPort, "port", "p", "", "监听端口，如: 8080 或 :8080")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd)
}

// listenAddr 自动补齐冒号前缀
func listenAddr(port string) string {
	if port == "" || strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	if flagPort != "" {
		cfg.Server.Port = flagPort
		logger.Info("命令行指定端口", "port", flagPort)
	}
	cfg.Server.Port = listenAddr(cfg.Server.Port)

	config.PrintConfig(logger)

	if err := database.Init(cfg, logger); err != nil {
		return fmt.Errorf("数据库初始化失败: %w", err)
	}
	middleware.InitJWT(cfg)

	handlers := buildHandlers(cfg, logger)
	r := router.SetupRouter(cfg, handlers)

	logger.Info("AI 行程规划服务已启动",
		"swagger", fmt.Sprintf("http://localhost%s/swagger/index.html", cfg.Server.Port),
		"api", fmt.Sprintf("http://localhost%s/api/v1/", cfg.Server.Port),
	)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("服务器启动失败: %w", err)
	}
	return nil
}

func buildHandlers(cfg *config.Config, logger *log.Logger) router.Handlers {
	planner := service.NewPlanner(service.NewOpenAIGenerator(cfg.LLM, logger), logger, cfg.LLM.MaxDays)
	cache := service.NewSummaryCache(cfg.Cache, logger)
	trips := service.NewTripService(database.NewTripStore(database.DB), cache, logger)
	calendar := service.NewCalendarExporter(cfg.Calendar.DefaultTimezone, logger)
	email := service.NewEmailService(&cfg.Email)

	return router.Handlers{
		Plan:   api.NewPlanHandler(planner),
		Trip:   api.NewTripHandler(trips),
		Export: api.NewExportHandler(trips, calendar, email),
	}
}
