package cmd

import (
	"fmt"
	"time"

	"tripplanner/middleware"

	"github.com/spf13/cobra"
)

var (
	flagTokenUserID   uint
	flagTokenUsername string
	flagTokenExpire   time.Duration
)

// 正式环境 token 由身份服务签发，本命令用于本地联调
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "签发调试用的 JWT",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		middleware.InitJWT(cfg)

		expire := flagTokenExpire
		if expire <= 0 {
			expire = cfg.JWT.ExpireTime
		}
		token, err := middleware.GenerateToken(flagTokenUserID, flagTokenUsername, expire)
		if err != nil {
			return fmt.Errorf("生成token失败: %w", err)
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().UintVarP(&flagTokenUserID, "user", "u", 1, "用户ID")
	tokenCmd.Flags().StringVar(&flagTokenUsername, "username", "dev", "用户名")
	tokenCmd.Flags().DurationVar(&flagTokenExpire, "expire", 0, "有效期，默认取配置 jwt.expire_hours")
	rootCmd.AddCommand(tokenCmd)
}
