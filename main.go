package main

import "tripplanner/cmd"

// @title AI 行程规划 API
// @version 1.0
// @description 一句话生成完整旅行行程，行程项增删改时预算自动对账，支持 Excel/日历导出与邮件发送
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cmd.Execute()
}
