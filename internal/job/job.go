// Package job 定时刷新排行榜缓存，每天归档一次排行榜快照
package job

import (
	"citizens-link/config"
	"citizens-link/internal/global/bucket"
	"citizens-link/internal/global/logger"
	"citizens-link/internal/leaderboard"
	"citizens-link/internal/store"
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron    *cron.Cron
	store   store.Store
	bucket  *bucket.Bucket
	timeout time.Duration
	log     *slog.Logger
}

// New 注册任务但不启动，archive 任务只在配置了 S3 时注册
func New(cfg config.Job, s store.Store, b *bucket.Bucket) (*Scheduler, error) {
	log := logger.New("Job")
	sc := &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
			cron.Recover(cron.DiscardLogger),
		)),
		store:   s,
		bucket:  b,
		timeout: time.Duration(cfg.ArchiveTimeout) * time.Second,
		log:     log,
	}
	if sc.timeout <= 0 {
		sc.timeout = time.Minute
	}

	if cfg.RefreshSpec != "" {
		if _, err := sc.cron.AddFunc(cfg.RefreshSpec, sc.Refresh); err != nil {
			return nil, errors.Wrapf(err, "无效的 refresh_spec %q", cfg.RefreshSpec)
		}
	}
	if cfg.ArchiveSpec != "" && b != nil {
		if _, err := sc.cron.AddFunc(cfg.ArchiveSpec, sc.Archive); err != nil {
			return nil, errors.Wrapf(err, "无效的 archive_spec %q", cfg.ArchiveSpec)
		}
	}
	return sc, nil
}

func (s *Scheduler) Start() {
	s.log.Info("定时任务已启动", "jobs", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop 等待正在执行的任务结束
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn("等待定时任务结束超时")
	}
}

func (s *Scheduler) Refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	entries, err := leaderboard.Refresh(ctx, s.store)
	if err != nil {
		s.log.Error("刷新排行榜缓存失败", "error", err)
		return
	}
	s.log.Debug("排行榜缓存已刷新", "entries", len(entries))
}

func (s *Scheduler) Archive() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := leaderboard.Archive(ctx, s.store, s.bucket); err != nil {
		s.log.Error("归档排行榜快照失败", "error", err)
	}
}
