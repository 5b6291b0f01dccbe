package database

import (
	"fmt"
	"time"

	"tripplanner/config"
	"tripplanner/models"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config, logger *log.Logger) error {
	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	level := gormlogger.Warn
	if cfg.Server.Mode == "debug" {
		level = gormlogger.Info
	}

	// SQL 日志走同一个 logger
	sqlLogger := gormlogger.New(logger.StandardLog(log.StandardLogOptions{ForceLevel: log.DebugLevel}), gormlogger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: sqlLogger})
	if err != nil {
		return errors.Wrap(err, "连接数据库失败")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if err := DB.AutoMigrate(&models.TripRecord{}); err != nil {
		return errors.Wrap(err, "迁移行程表失败")
	}

	// 兼容历史数据：只有 trip_json 的老记录，从文档回填平铺字段
	if n, err := BackfillProjections(DB); err != nil {
		logger.Warn("回填行程平铺字段失败", "error", err)
	} else if n > 0 {
		logger.Info("已回填行程平铺字段", "count", n)
	}

	logger.Info("数据库初始化成功", "host", cfg.Database.Host, "db", cfg.Database.DBName)
	return nil
}

// BackfillProjections 对 title 为空的记录重新投影平铺字段，返回更新条数
func BackfillProjections(db *gorm.DB) (int, error) {
	var records []models.TripRecord
	if err := db.Where("title = ?", "").Find(&records).Error; err != nil {
		return 0, err
	}
	updated := 0
	for i := range records {
		trip, err := records[i].Trip()
		if err != nil {
			continue
		}
		if err := records[i].SetTrip(trip); err != nil {
			continue
		}
		if err := db.Model(&records[i]).Updates(map[string]any{
			"title":       records[i].Title,
			"destination": records[i].Destination,
			"start_date":  records[i].StartDate,
			"end_date":    records[i].EndDate,
		}).Error; err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

