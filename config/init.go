package config

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var current atomic.Pointer[Config]

// Path 配置文件路径，可由 --config 或 CONFIG_PATH 覆盖
var Path = "config.yaml"

// Init 读取配置文件后再用环境变量覆盖，失败直接 panic
func Init() {
	cfg, err := Load(Path)
	if err != nil {
		panic(err)
	}
	Set(cfg)
}

// Load 读取配置：默认值 -> yaml 文件 -> 环境变量
// 文件不存在时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		path = p
	}
	v := viper.New()
	setDefaults(v)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "读取配置文件 %s 失败", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "解析配置失败")
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, errors.Wrap(err, "读取环境变量失败")
	}
	if len(cfg.Ranking.Tiers) == 0 {
		cfg.Ranking.Tiers = DefaultTiers()
	}
	return cfg, nil
}

func Get() *Config {
	cfg := current.Load()
	if cfg == nil {
		panic("config not initialized")
	}
	return cfg
}

// Current 与 Get 相同，但未初始化时返回 nil
func Current() *Config {
	return current.Load()
}

// Set 替换全局配置，测试中也用它注入配置
func Set(cfg *Config) {
	current.Store(cfg)
}

// DefaultTiers 连带等级：씨앗 / 새싹 / 나무 / 숲
func DefaultTiers() []Tier {
	return []Tier{
		{MinPoint: 0, Name: "씨앗", Style: "seed"},
		{MinPoint: 100, Name: "새싹", Style: "sprout"},
		{MinPoint: 1000, Name: "나무", Style: "tree"},
		{MinPoint: 2000, Name: "숲", Style: "forest"},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "8080")
	v.SetDefault("prefix", "api")
	v.SetDefault("mode", string(ModeDebug))

	v.SetDefault("store.backend", "supabase")
	v.SetDefault("supabase.timeout", 10*time.Second)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.path", "citizens-link.db")

	v.SetDefault("jwt.access_expire", 12*60*60)

	v.SetDefault("report.allow_qr_approval", true)

	v.SetDefault("ranking.point_policy", "live")
	v.SetDefault("ranking.fallback_points", 0)
	v.SetDefault("ranking.anonymous", "익명")
	v.SetDefault("ranking.cache_ttl", 5*time.Minute)

	v.SetDefault("job.enable", true)
	v.SetDefault("job.refresh_spec", "@every 5m")
	v.SetDefault("job.archive_spec", "0 0 * * *")
	v.SetDefault("job.archive_timeout", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age", 30)

	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.prefix", "citizens-link/rankings")
	v.SetDefault("s3.presign_expire", 15*60)
}
