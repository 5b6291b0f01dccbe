package cmd

import (
	"os"
	"time"

	"tripplanner/config"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tripplanner",
	Short: "AI 行程规划服务",
	Long:  "一句话生成完整旅行行程，行程项增删改时预算自动对账。",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// .env 不存在时忽略
		_ = godotenv.Load()
	},
	RunE: runServe,
}

// Execute 由 main.go 调用
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "外部配置文件路径（可选）")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "输出调试日志")
}

// loadConfig 加载配置并创建日志
func loadConfig() (*config.Config, *log.Logger, error) {
	cfg, err := config.LoadConfig(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	return cfg, newLogger(cfg), nil
}

func newLogger(cfg *config.Config) *log.Logger {
	level := log.InfoLevel
	if flagVerbose || cfg.Server.Mode == "debug" {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
}
