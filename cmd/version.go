package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version 构建时可通过 -ldflags "-X tripplanner/cmd.Version=..." 覆盖
var Version = "v1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("AI 行程规划 %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
