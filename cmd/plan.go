package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"tripplanner/models"
	"tripplanner/service"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagPlanDestination string
	flagPlanDays        int
	flagPlanBudget      string
	flagPlanPeople      int
	flagPlanTags        []string
	flagPlanStart       string
	flagPlanCurrency    string
	flagPlanOutput      string
	flagPlanExcel       string
)

var planCmd = &cobra.Command{
	Use:   "plan [需求描述]",
	Short: "在命令行生成一份行程",
	Example: `  tripplanner plan "五一带孩子去东京玩5天，喜欢美食和动漫"
  tripplanner plan -d 成都 -n 3 --budget 3000 --people 2 --tags 美食,熊猫 -o chengdu.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&flagPlanDestination, "destination", "d", "", "目的地")
	planCmd.Flags().IntVarP(&flagPlanDays, "days", "n", 0, "天数")
	planCmd.Flags().StringVar(&flagPlanBudget, "budget", "", "总预算")
	planCmd.Flags().IntVar(&flagPlanPeople, "people", 0, "出行人数")
	planCmd.Flags().StringSliceVar(&flagPlanTags, "tags", nil, "偏好标签，逗号分隔")
	planCmd.Flags().StringVar(&flagPlanStart, "start", "", "出发日期 YYYY-MM-DD")
	planCmd.Flags().StringVar(&flagPlanCurrency, "currency", "", "币种 CNY/JPY/USD")
	planCmd.Flags().StringVarP(&flagPlanOutput, "output", "o", "", "输出 JSON 文件，默认打印到标准输出")
	planCmd.Flags().StringVar(&flagPlanExcel, "excel", "", "同时导出 Excel 文件")
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	req := service.PlanRequest{
		Destination: flagPlanDestination,
		Days:        flagPlanDays,
		People:      flagPlanPeople,
		Tags:        flagPlanTags,
		StartDate:   flagPlanStart,
		Currency:    models.Currency(flagPlanCurrency),
	}
	if len(args) > 0 {
		req.Prompt = args[0]
	}
	if flagPlanBudget != "" {
		budget, err := decimal.NewFromString(flagPlanBudget)
		if err != nil {
			return fmt.Errorf("预算格式错误: %w", err)
		}
		req.Budget = &budget
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	planner := service.NewPlanner(service.NewOpenAIGenerator(cfg.LLM, logger), logger, cfg.LLM.MaxDays)
	logger.Info("正在生成行程", "model", cfg.LLM.Model, "destination", req.Destination, "days", req.Days)
	trip, err := planner.Synthesize(ctx, req)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(trip, "", "  ")
	if err != nil {
		return err
	}
	if flagPlanOutput == "" {
		fmt.Println(string(data))
	} else if err := os.WriteFile(flagPlanOutput, data, 0o644); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	} else {
		logger.Info("行程已保存", "path", flagPlanOutput)
	}

	if flagPlanExcel != "" {
		buf, err := service.BuildTripWorkbook(trip)
		if err != nil {
			return fmt.Errorf("生成Excel失败: %w", err)
		}
		if err := os.WriteFile(flagPlanExcel, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("写入文件失败: %w", err)
		}
		logger.Info("Excel 已导出", "path", flagPlanExcel)
	}

	logger.Info("行程概览",
		"title", trip.Title,
		"days", len(trip.Days),
		"total", service.FormatAmount(trip.Budget.TotalEstimate, trip.Budget.Currency),
	)
	return nil
}
