// Package config 应用配置：.env -> 环境变量 -> config.yaml -> 默认值
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"equipmall/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 主存储类型
const (
	StoreSheets   = "sheets"
	StoreJSON     = "json"
	StoreDatabase = "database"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       logger.Config   `mapstructure:"log"`
	Store     StoreConfig     `mapstructure:"store"`
	Sheets    SheetsConfig    `mapstructure:"sheets"`
	JSON      JSONConfig      `mapstructure:"json"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	Document  DocumentConfig  `mapstructure:"document"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // gin: debug / release / test
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig Driver 为主存储；Fallback 为 true 时本地 JSON 兜底读取并镜像写入
type StoreConfig struct {
	Driver   string        `mapstructure:"driver"`
	Fallback bool          `mapstructure:"fallback"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"` // 0 关闭缓存
}

type SheetsConfig struct {
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
	Debug   bool          `mapstructure:"debug"`
}

type JSONConfig struct {
	Path string `mapstructure:"path"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite / postgres
	DSN    string `mapstructure:"dsn"`
	Debug  bool   `mapstructure:"debug"`
}

// RedisConfig Addr 为空时使用进程内缓存
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SMTPConfig Host 为空时不发邮件
type SMTPConfig struct {
	Host       string   `mapstructure:"host"`
	Port       int      `mapstructure:"port"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	From       string   `mapstructure:"from"`
	Recipients []string `mapstructure:"recipients"` // emailSettings 没配置收件人时使用
}

type DocumentConfig struct {
	FontPath    string `mapstructure:"font_path"` // 韩文 TTF；为空时使用内置字体
	CompanyName string `mapstructure:"company_name"`
	CompanyInfo string `mapstructure:"company_info"`
	UnitName    string `mapstructure:"unit_name"`
	ValidDays   int    `mapstructure:"valid_days"`
}

type SnapshotConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Spec    string `mapstructure:"spec"` // cron 表达式
	Path    string `mapstructure:"path"`
}

type RateLimitConfig struct {
	FormCooldown  time.Duration `mapstructure:"form_cooldown"`  // 同一 IP 提交表单的间隔
	AdminCooldown time.Duration `mapstructure:"admin_cooldown"` // 迁移/快照的间隔
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.filepath", "")
	v.SetDefault("log.development", false)

	v.SetDefault("store.driver", StoreJSON)
	v.SetDefault("store.fallback", true)
	v.SetDefault("store.cache_ttl", "30s")

	v.SetDefault("sheets.url", "")
	v.SetDefault("sheets.token", "")
	v.SetDefault("sheets.timeout", "20s")
	v.SetDefault("sheets.debug", false)

	v.SetDefault("json.path", "data/db.json")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/equipmall.db")
	v.SetDefault("database.debug", false)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.recipients", []string{})

	v.SetDefault("document.font_path", "")
	v.SetDefault("document.company_name", "")
	v.SetDefault("document.company_info", "")
	v.SetDefault("document.unit_name", "대")
	v.SetDefault("document.valid_days", 30)

	v.SetDefault("snapshot.enabled", true)
	v.SetDefault("snapshot.spec", "0 3 * * *")
	v.SetDefault("snapshot.path", "data/snapshot.json")

	v.SetDefault("ratelimit.form_cooldown", "10s")
	v.SetDefault("ratelimit.admin_cooldown", "1m")
}

// Load 读取配置
// 环境变量用下划线代替点，如 STORE_DRIVER、SHEETS_URL
func Load(configFile string) (*Config, error) {
	// .env 不存在不算错误
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	// 环境变量里是逗号分隔的
	cfg.SMTP.Recipients = splitComma(strings.Join(cfg.SMTP.Recipients, ","))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 启动前检查
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreSheets:
		if c.Sheets.URL == "" {
			return errors.New("store.driver=sheets 需要配置 sheets.url")
		}
	case StoreJSON, StoreDatabase:
	default:
		return fmt.Errorf("未知的 store.driver: %q", c.Store.Driver)
	}
	if c.Snapshot.Enabled && c.Snapshot.Spec == "" {
		return errors.New("snapshot.spec 不能为空")
	}
	return nil
}

func splitComma(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
