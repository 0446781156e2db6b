// Package store 活动类型和活动报告两张表的读写
//
// 三种实现：托管的 Supabase(PostgREST)、gorm 直连数据库、进程内存。
// 读写都只做一次调用，失败直接返回，不重试。
package store

import (
	"citizens-link/config"
	"citizens-link/internal/global/httpclient"
	"citizens-link/internal/model"
	"citizens-link/internal/ranking"
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrAlreadyApproved = errors.New("report already approved")
	ErrDuplicate       = errors.New("duplicate record")
)

type Store interface {
	ListActivityTypes(ctx context.Context) ([]model.ActivityType, error)
	GetActivityType(ctx context.Context, id uint) (*model.ActivityType, error)
	CreateActivityType(ctx context.Context, activity *model.ActivityType) error
	UpdateActivityType(ctx context.Context, id uint, update ActivityTypeUpdate) (*model.ActivityType, error)

	// ListPendingReports 待审核报告，关联活动名称和积分，按提交时间倒序
	ListPendingReports(ctx context.Context) ([]model.ActivityReport, error)
	// ListApprovedReports 已审核报告，关联活动积分
	ListApprovedReports(ctx context.Context) ([]model.ActivityReport, error)
	// GetReport 单条报告，关联活动名称和积分
	GetReport(ctx context.Context, id uint) (*model.ActivityReport, error)
	InsertReport(ctx context.Context, report *model.ActivityReport) error
	// ApproveReport 只更新仍为 pending 的报告
	ApproveReport(ctx context.Context, id uint, approval Approval) error
}

// ActivityTypeUpdate nil 字段不修改
type ActivityTypeUpdate struct {
	Name       *string
	BasePoints *int
}

type Approval struct {
	ApprovedBy    string
	ApprovedAt    time.Time
	AwardedPoints *int
}

// Default 进程使用的存储，由 Init 设置
var Default Store

func Init(db *gorm.DB) error {
	s, err := New(config.Get(), db)
	if err != nil {
		return err
	}
	Default = s
	return nil
}

const (
	BackendSupabase = "supabase"
	BackendGorm     = "gorm"
	BackendMemory   = "memory"
)

// New 按配置创建存储后端，gorm 后端使用已初始化的 db
func New(cfg *config.Config, db *gorm.DB) (Store, error) {
	switch cfg.Store.Backend {
	case BackendSupabase, "":
		if cfg.Supabase.URL == "" || cfg.Supabase.AnonKey == "" {
			return nil, errors.New("SUPABASE_URL 和 SUPABASE_ANON_KEY 未配置")
		}
		client := httpclient.Client
		if client == nil {
			client = httpclient.New(cfg.Supabase.Timeout)
		}
		snapshot := cfg.Ranking.PointPolicy == string(ranking.PolicySnapshot)
		return NewSupabase(client, cfg.Supabase.URL, cfg.Supabase.AnonKey).WithSnapshot(snapshot), nil
	case BackendGorm:
		if db == nil {
			return nil, errors.New("gorm 后端需要先初始化数据库")
		}
		return NewGorm(db), nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, errors.Errorf("未知的存储后端: %s", cfg.Store.Backend)
	}
}
