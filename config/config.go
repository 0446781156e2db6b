package config

import "time"

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

type Config struct {
	Host     string   `envconfig:"HOST"`
	Port     string   `envconfig:"PORT"`
	Prefix   string   `envconfig:"PREFIX"`
	Mode     Mode     `envconfig:"MODE"`
	Store    Store    `mapstructure:"Store"`
	Supabase Supabase `mapstructure:"Supabase" envconfig:"SUPABASE"`
	Database Database `mapstructure:"Database" envconfig:"DB"`
	Redis    Redis    `mapstructure:"Redis"`
	JWT      JWT      `mapstructure:"JWT"`
	Staff    []Staff  `mapstructure:"Staff" ignored:"true"`
	Report   Report   `mapstructure:"Report"`
	Ranking  Ranking  `mapstructure:"Ranking"`
	Job      Job      `mapstructure:"Job"`
	Log      Log      `mapstructure:"Log"`
	Sentry   Sentry   `mapstructure:"Sentry"`
	S3       S3       `mapstructure:"S3"`
}

// 嵌套字段不写 envconfig 标签，键名由字段名生成（DB_PATH、REDIS_PORT 等），
// 写了标签的字段在带前缀的键缺失时会回退读取同名的裸变量（PATH、PORT）

// Store 选择数据存储后端：supabase(托管 PostgREST) / gorm / memory
type Store struct {
	Backend string `mapstructure:"backend"`
}

// Supabase 托管后端的地址和匿名访问 key，对应原前端的两个环境变量
type Supabase struct {
	URL     string        `mapstructure:"url"`
	AnonKey string        `mapstructure:"anon_key" split_words:"true"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Database struct {
	Driver   string `mapstructure:"driver"` // mysql, postgres, sqlite
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"db_name"`
	SSLMode  string `mapstructure:"ssl_mode" split_words:"true"`
	Path     string `mapstructure:"path"` // sqlite 文件路径
}

type Redis struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWT struct {
	AccessSecret string `mapstructure:"access_secret" split_words:"true"`
	AccessExpire int64  `mapstructure:"access_expire" split_words:"true"` // 秒
}

// Staff 运营本部账号，密码只保存 bcrypt 哈希
type Staff struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
	RoleID       int    `mapstructure:"role_id"`
}

type Report struct {
	AllowQRApproval bool `mapstructure:"allow_qr_approval" split_words:"true"`
}

type Tier struct {
	MinPoint int    `mapstructure:"min_point"`
	Name     string `mapstructure:"name"`
	Style    string `mapstructure:"style"`
}

type Ranking struct {
	PointPolicy    string        `mapstructure:"point_policy" split_words:"true"` // live, snapshot
	FallbackPoints int           `mapstructure:"fallback_points" split_words:"true"`
	Anonymous      string        `mapstructure:"anonymous"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl" split_words:"true"`
	Tiers          []Tier        `mapstructure:"tiers" ignored:"true"`
}

type Job struct {
	Enable         bool   `mapstructure:"enable"`
	RefreshSpec    string `mapstructure:"refresh_spec" split_words:"true"`
	ArchiveSpec    string `mapstructure:"archive_spec" split_words:"true"`
	ArchiveTimeout int    `mapstructure:"archive_timeout" split_words:"true"` // 秒
}

type Log struct {
	FilePath   string `mapstructure:"file_path" split_words:"true"`   // 日志文件路径
	Level      string `mapstructure:"level"`                          // 日志级别：debug, info, warn, error
	MaxSize    int    `mapstructure:"max_size" split_words:"true"`    // 日志文件最大大小（MB）
	MaxBackups int    `mapstructure:"max_backups" split_words:"true"` // 保留的旧日志文件数
	MaxAge     int    `mapstructure:"max_age" split_words:"true"`     // 日志文件保留天数
	Compress   bool   `mapstructure:"compress"`                       // 是否压缩旧日志文件
}

type Sentry struct {
	Dsn         string        `mapstructure:"dsn"`
	Environment string        `mapstructure:"environment"`
	SampleRate  float64       `mapstructure:"sample_rate" split_words:"true"`
	Tracing     SentryTracing `mapstructure:"tracing"`
}

type SentryTracing struct {
	DBSlowThresholdMs    int  `mapstructure:"db_slow_threshold_ms" split_words:"true"`
	RedisSlowThresholdMs int  `mapstructure:"redis_slow_threshold_ms" split_words:"true"`
	TraceHTTPCalls       bool `mapstructure:"trace_http_calls" split_words:"true"`
}

type S3 struct {
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKey       string `mapstructure:"access_key" split_words:"true"`
	SecretAccessKey string `mapstructure:"secret_key" split_words:"true"`
	Prefix          string `mapstructure:"prefix"`
	UsePathStyle    bool   `mapstructure:"path_style" split_words:"true"`
	PresignExpire   int64  `mapstructure:"presign_expire" split_words:"true"` // 秒
}

func (s S3) Enabled() bool {
	return s.Bucket != "" && s.AccessKey != ""
}

func (r Redis) Enabled() bool {
	return r.Host != ""
}
