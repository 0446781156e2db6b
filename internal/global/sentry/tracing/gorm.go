package tracing

import (
	"citizens-link/config"
	"time"

	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"
)

const (
	gormSpanKey    = "sentry:span"
	gormStartKey   = "sentry:start"
	callbackPrefix = "sentry_tracing"
)

// GormTracingPlugin 为每条 SQL 创建 span，描述只用表名避免记录报告人姓名
type GormTracingPlugin struct {
	system        string
	slowThreshold time.Duration
}

// NewGormTracingPlugin system 为数据库类型：mysql / postgresql / sqlite
func NewGormTracingPlugin(system string) *GormTracingPlugin {
	p := &GormTracingPlugin{system: system}
	if cfg := config.Current(); cfg != nil {
		p.slowThreshold = slowThreshold(cfg.Sentry.Tracing.DBSlowThresholdMs)
	}
	return p
}

func (p *GormTracingPlugin) Name() string {
	return "SentryTracingPlugin"
}

// Initialize 注册前后回调，报告不会被删除所以不挂 delete
func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	_ = cb.Create().Before("gorm:create").Register(callbackPrefix+":before_create", p.before("db.sql.create"))
	_ = cb.Query().Before("gorm:query").Register(callbackPrefix+":before_query", p.before("db.sql.query"))
	_ = cb.Update().Before("gorm:update").Register(callbackPrefix+":before_update", p.before("db.sql.update"))
	_ = cb.Row().Before("gorm:row").Register(callbackPrefix+":before_row", p.before("db.sql.row"))
	_ = cb.Raw().Before("gorm:raw").Register(callbackPrefix+":before_raw", p.before("db.sql.raw"))

	_ = cb.Create().After("gorm:create").Register(callbackPrefix+":after_create", p.after)
	_ = cb.Query().After("gorm:query").Register(callbackPrefix+":after_query", p.after)
	_ = cb.Update().After("gorm:update").Register(callbackPrefix+":after_update", p.after)
	_ = cb.Row().After("gorm:row").Register(callbackPrefix+":after_row", p.after)
	_ = cb.Raw().After("gorm:raw").Register(callbackPrefix+":after_raw", p.after)
	return nil
}

func (p *GormTracingPlugin) before(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Statement == nil || db.Statement.Context == nil {
			return
		}
		db.InstanceSet(gormStartKey, time.Now())
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		span := StartSpan(db.Statement.Context, operation, table)
		if span == nil {
			return
		}
		span.SetData("db.system", p.system)
		db.InstanceSet(gormSpanKey, span)
		db.Statement.Context = span.Context()
	}
}

func (p *GormTracingPlugin) after(db *gorm.DB) {
	startVal, ok := db.InstanceGet(gormStartKey)
	if !ok {
		return
	}
	start, _ := startVal.(time.Time)
	spanVal, ok := db.InstanceGet(gormSpanKey)
	if !ok {
		return
	}
	span, _ := spanVal.(*sentry.Span)
	if span == nil {
		return
	}
	span.SetData("db.rows_affected", db.RowsAffected)
	finish(span, time.Since(start), p.slowThreshold, db.Error)
}
