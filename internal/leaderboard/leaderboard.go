// Package leaderboard 读取已审核报告计算排行榜，结果缓存在 Redis
package leaderboard

import (
	"citizens-link/config"
	"citizens-link/internal/global/cache"
	"citizens-link/internal/global/logger"
	"citizens-link/internal/ranking"
	"citizens-link/internal/store"
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
)

var log = slog.Default()

// Init 校验配置中的等级表
func Init() error {
	log = logger.New("Leaderboard")
	_, err := ranking.NewTierTable(configTiers(config.Get().Ranking.Tiers))
	return errors.Wrap(err, "ranking.tiers 配置错误")
}

// Row 排行榜的一行，也是导出表格的一行
type Row struct {
	Rank      int    `json:"rank" excel:"순위"`
	Name      string `json:"name" excel:"성함"`
	Point     int    `json:"point" excel:"포인트"`
	Tier      string `json:"tier" excel:"등급"`
	TierStyle string `json:"tier_style" excel:"-"`
	TierLevel int    `json:"tier_level" excel:"-"`
}

func Options() ranking.Options {
	cfg := config.Current()
	if cfg == nil {
		return ranking.DefaultOptions()
	}
	return ranking.Options{
		Policy:         ranking.PointPolicy(cfg.Ranking.PointPolicy),
		FallbackPoints: cfg.Ranking.FallbackPoints,
		Anonymous:      cfg.Ranking.Anonymous,
	}
}

// Tiers 配置的等级表，配置无效时使用默认表
func Tiers() ranking.TierTable {
	cfg := config.Current()
	if cfg == nil || len(cfg.Ranking.Tiers) == 0 {
		return ranking.DefaultTierTable
	}
	table, err := ranking.NewTierTable(configTiers(cfg.Ranking.Tiers))
	if err != nil {
		return ranking.DefaultTierTable
	}
	return table
}

func configTiers(tiers []config.Tier) []ranking.Tier {
	out := make([]ranking.Tier, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, ranking.Tier{Name: t.Name, Style: t.Style, MinPoint: t.MinPoint})
	}
	return out
}

// Rankings 优先读缓存，未命中时重新计算
func Rankings(ctx context.Context, s store.Store) ([]ranking.Entry, error) {
	var entries []ranking.Entry
	err := cache.GetJSON(ctx, cache.KeyRankings, &entries)
	if err == nil {
		return entries, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		log.Warn("读取排行榜缓存失败", "error", err)
	}
	return Refresh(ctx, s)
}

// Refresh 重新计算并写入缓存
// 读取期间发生了 Invalidate 时，写入的结果可能不含新审核的报告，写完后删掉
func Refresh(ctx context.Context, s store.Store) ([]ranking.Entry, error) {
	gen, err := cache.GetInt(ctx, cache.KeyRankingsGen)
	if err != nil {
		log.Warn("读取排行榜缓存版本失败", "error", err)
	}
	reports, err := s.ListApprovedReports(ctx)
	if err != nil {
		return nil, err
	}
	entries := ranking.Compute(ranking.FromModels(reports), Options())
	if err := cache.SetJSON(ctx, cache.KeyRankings, entries, cacheTTL()); err != nil {
		log.Warn("写入排行榜缓存失败", "error", err)
		return entries, nil
	}
	if now, err := cache.GetInt(ctx, cache.KeyRankingsGen); err != nil || now != gen {
		if err := cache.Del(ctx, cache.KeyRankings); err != nil {
			log.Warn("清除过期排行榜缓存失败", "error", err)
		}
	}
	return entries, nil
}

// Invalidate 审核、QR 提交和修改活动积分后调用
// 先递增版本再删除，与 Refresh 的写后检查配合
func Invalidate(ctx context.Context) {
	if err := cache.Incr(ctx, cache.KeyRankingsGen); err != nil {
		log.Warn("递增排行榜缓存版本失败", "error", err)
	}
	if err := cache.Del(ctx, cache.KeyRankings); err != nil {
		log.Warn("清除排行榜缓存失败", "error", err)
	}
}

func Rows(entries []ranking.Entry, tiers ranking.TierTable) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, NewRow(e, tiers))
	}
	return rows
}

func NewRow(e ranking.Entry, tiers ranking.TierTable) Row {
	tier := tiers.Classify(e.Point)
	return Row{
		Rank:      e.Rank,
		Name:      e.Name,
		Point:     e.Point,
		Tier:      tier.Name,
		TierStyle: tier.Style,
		TierLevel: tier.Level,
	}
}

func cacheTTL() time.Duration {
	if cfg := config.Current(); cfg != nil && cfg.Ranking.CacheTTL > 0 {
		return cfg.Ranking.CacheTTL
	}
	return 5 * time.Minute
}
