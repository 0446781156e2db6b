package job

import (
	"citizens-link/config"
	"citizens-link/internal/global/bucket"
	"citizens-link/internal/store"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewRegistersJobs(t *testing.T) {
	cfg := config.Job{RefreshSpec: "@every 1m", ArchiveSpec: "0 0 * * *", ArchiveTimeout: 5}

	sc, err := New(cfg, store.NewMemory(), nil)
	require.NoError(t, err)
	require.Len(t, sc.cron.Entries(), 1)

	sc, err = New(cfg, store.NewMemory(), &bucket.Bucket{Bucket: "archive"})
	require.NoError(t, err)
	require.Len(t, sc.cron.Entries(), 2)
	require.Equal(t, 5*time.Second, sc.timeout)
}

func TestNewRejectsInvalidSpec(t *testing.T) {
	_, err := New(config.Job{RefreshSpec: "every now and then"}, store.NewMemory(), nil)
	require.Error(t, err)
}

func TestStartStop(t *testing.T) {
	sc, err := New(config.Job{RefreshSpec: "@every 1h"}, store.NewMemory(), nil)
	require.NoError(t, err)
	sc.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	sc.Stop(ctx)
}

func TestRefreshAndArchiveDoNotPanic(t *testing.T) {
	sc, err := New(config.Job{}, store.NewMemory(), nil)
	require.NoError(t, err)
	sc.Refresh()
	// 未配置 S3 只记录错误
	sc.Archive()
}
