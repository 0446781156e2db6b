package database

import (
	"citizens-link/config"
	"citizens-link/internal/global/sentry/tracing"
	"citizens-link/internal/model"
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// autoMigrateModels 定义需要自动迁移的模型列表
var autoMigrateModels = []any{
	&model.ActivityType{},
	&model.ActivityReport{},
}

func Init() error {
	db, err := Open(config.Get().Database, config.Get().Mode)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Open 按驱动建立连接并自动迁移
func Open(cfg config.Database, mode config.Mode) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true}, // 还是单数表名好
		TranslateError: true,                                        // 唯一键冲突统一为 gorm.ErrDuplicatedKey
	}

	switch mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case config.ModeRelease:
		gormConfig.Logger = logger.Discard
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "连接数据库失败 (%s)", cfg.Driver)
	}
	if tracing.IsEnabled() {
		if err := db.Use(tracing.NewGormTracingPlugin(cfg.Driver)); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate 使用模型列表进行自动迁移
func Migrate(db *gorm.DB) error {
	return errors.Wrap(db.AutoMigrate(autoMigrateModels...), "自动迁移失败")
}

func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.Username,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Name,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		// Supabase 的 Postgres 直连
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.Username,
			cfg.Password,
			cfg.Name,
			cfg.SSLMode,
		)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.Path), nil
	default:
		return nil, errors.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}
