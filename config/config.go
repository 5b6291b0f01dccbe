package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Email     EmailConfig     `mapstructure:"email"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Calendar  CalendarConfig  `mapstructure:"calendar"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    string `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
}

// JWTConfig JWT配置。token 由外部身份服务签发，这里只校验。
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
}

// LLMConfig 文本生成服务配置（OpenAI 兼容接口）
type LLMConfig struct {
	BaseURL        string  `mapstructure:"base_url"`
	APIKey         string  `mapstructure:"api_key"`
	Model          string  `mapstructure:"model"`
	Temperature    float64 `mapstructure:"temperature"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	MaxDays        int     `mapstructure:"max_days"`
}

// Timeout 单次调用超时
func (c LLMConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 300 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheConfig 汇总缓存配置，driver 为 memory 或 redis
type CacheConfig struct {
	Driver        string `mapstructure:"driver"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	TTLSeconds    int    `mapstructure:"ttl_seconds"`
}

// TTL 缓存有效期
func (c CacheConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// EmailConfig 邮件配置
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	PlanPerMinute int `mapstructure:"plan_per_minute"`
}

// CalendarConfig 日历导出配置，行程项都没有坐标时使用 default_timezone
type CalendarConfig struct {
	DefaultTimezone string `mapstructure:"default_timezone"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, errors.Wrap(err, "读取内置配置失败")
	}
	log.Debug("已加载内置默认配置")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Warn("无法读取指定配置文件", "path", configPath, "error", err)
		} else {
			log.Info("已合并外部配置文件", "path", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/tripplanner")
		externalViper.AddConfigPath("$HOME/.tripplanner")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Warn("合并外部配置失败", "error", err)
			} else {
				log.Info("已合并外部配置文件", "path", externalViper.ConfigFileUsed())
			}
		}
	}

	// 环境变量覆盖，如 TRIPPLANNER_LLM_API_KEY
	v.SetEnvPrefix("TRIPPLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "解析配置失败")
	}

	if cfg.JWT.ExpireHours <= 0 {
		cfg.JWT.ExpireHours = 24
	}
	cfg.JWT.ExpireTime = time.Duration(cfg.JWT.ExpireHours) * time.Hour
	if cfg.LLM.MaxDays <= 0 {
		cfg.LLM.MaxDays = 30
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	GlobalConfig = &cfg

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Driver {
	case "", "memory", "redis":
	default:
		return errors.Errorf("不支持的缓存驱动 %q", c.Cache.Driver)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.Errorf("llm.temperature 应在 0 到 2 之间，当前 %g", c.LLM.Temperature)
	}
	if c.Server.Mode == "release" && c.JWT.Secret == "change-me-in-production" {
		return errors.New("release 模式下必须修改 jwt.secret")
	}
	return nil
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("配置未初始化，请先调用 LoadConfig")
	}
	return GlobalConfig
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig(logger *log.Logger) {
	if GlobalConfig == nil {
		return
	}
	c := GlobalConfig
	logger.Info("当前配置",
		"port", c.Server.Port,
		"mode", c.Server.Mode,
		"database", fmt.Sprintf("%s@%s:%s/%s", c.Database.Username, c.Database.Host, c.Database.Port, c.Database.DBName),
		"llm", fmt.Sprintf("%s (%s)", c.LLM.Model, c.LLM.BaseURL),
		"llm_key", c.LLM.APIKey != "",
		"cache", c.Cache.Driver,
		"email", c.Email.Enabled,
	)
}
