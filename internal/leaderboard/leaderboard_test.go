package leaderboard

import (
	"citizens-link/config"
	"citizens-link/internal/global/bucket"
	"citizens-link/internal/model"
	"citizens-link/internal/ranking"
	"citizens-link/internal/store"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) *store.Memory {
	ctx := context.Background()
	s := store.NewMemory()
	cleanup := &model.ActivityType{Name: "하천 정화", BasePoints: 120}
	require.NoError(t, s.CreateActivityType(ctx, cleanup))
	for _, name := range []string{"Kim", "Lee", " Kim"} {
		r := &model.ActivityReport{UserName: name, ActivityID: cleanup.ID, Status: model.ReportPending}
		require.NoError(t, s.InsertReport(ctx, r))
		require.NoError(t, s.ApproveReport(ctx, r.ID, store.Approval{ApprovedBy: "admin", ApprovedAt: time.Now()}))
	}
	return s
}

func TestRankingsWithoutCache(t *testing.T) {
	config.Set(&config.Config{Ranking: config.Ranking{PointPolicy: "live", Anonymous: "익명", Tiers: config.DefaultTiers()}})
	t.Cleanup(func() { config.Set(nil) })

	entries, err := Rankings(context.Background(), seed(t))
	require.NoError(t, err)
	require.Equal(t, []ranking.Entry{
		{Rank: 1, Name: "Kim", Point: 240},
		{Rank: 2, Name: "Lee", Point: 120},
	}, entries)

	rows := Rows(entries, Tiers())
	require.Equal(t, "새싹", rows[0].Tier)
	require.Equal(t, "sprout", rows[0].TierStyle)
	require.Equal(t, 1, rows[1].TierLevel)
}

func TestTiersFallsBackOnInvalidConfig(t *testing.T) {
	config.Set(&config.Config{Ranking: config.Ranking{Tiers: []config.Tier{{Name: "A", MinPoint: 5}}}})
	t.Cleanup(func() { config.Set(nil) })

	require.Equal(t, ranking.DefaultTierTable, Tiers())
	require.Error(t, Init())
}

func TestOptionsFromConfig(t *testing.T) {
	config.Set(nil)
	require.Equal(t, ranking.DefaultOptions(), Options())

	config.Set(&config.Config{Ranking: config.Ranking{PointPolicy: "snapshot", FallbackPoints: 5, Anonymous: "Anon"}})
	t.Cleanup(func() { config.Set(nil) })
	require.Equal(t, ranking.Options{Policy: ranking.PolicySnapshot, FallbackPoints: 5, Anonymous: "Anon"}, Options())
}

func TestWorkbook(t *testing.T) {
	f, err := Workbook(context.Background(), seed(t))
	require.NoError(t, err)
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Equal(t, []string{"순위", "성함", "포인트", "등급"}, rows[0])
	require.Equal(t, []string{"1", "Kim", "240", "새싹"}, rows[1])
}

func TestArchiveWithoutBucket(t *testing.T) {
	_, err := Archive(context.Background(), store.NewMemory(), nil)
	require.ErrorIs(t, err, bucket.ErrNotConfigured)
}
