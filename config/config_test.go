package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	require.Equal(t, ModeDebug, cfg.Mode)
	require.Equal(t, "supabase", cfg.Store.Backend)
	require.Equal(t, "live", cfg.Ranking.PointPolicy)
	require.Equal(t, "익명", cfg.Ranking.Anonymous)
	require.Equal(t, 5*time.Minute, cfg.Ranking.CacheTTL)
	require.True(t, cfg.Report.AllowQRApproval)
	require.Equal(t, DefaultTiers(), cfg.Ranking.Tiers)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
Mode: release
Supabase:
  url: https://file.supabase.co
  anon_key: file-key
Ranking:
  fallback_points: 10
  tiers:
    - min_point: 0
      name: seed
    - min_point: 31
      name: sprout
    - min_point: 100
      name: tree
Staff:
  - username: hq
    password_hash: "$2a$10$abc"
    role_id: 1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("SUPABASE_URL", "https://env.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, ModeRelease, cfg.Mode)
	require.Equal(t, "https://env.supabase.co", cfg.Supabase.URL)
	require.Equal(t, "env-key", cfg.Supabase.AnonKey)
	require.Equal(t, 10, cfg.Ranking.FallbackPoints)
	require.Len(t, cfg.Ranking.Tiers, 3)
	require.Equal(t, 31, cfg.Ranking.Tiers[1].MinPoint)
	require.Len(t, cfg.Staff, 1)
	require.Equal(t, "hq", cfg.Staff[0].Username)
	require.Equal(t, 1, cfg.Staff[0].RoleID)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Mode: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadIgnoresBareEnvForNestedFields(t *testing.T) {
	t.Setenv("PATH", "/usr/bin:/bin")
	t.Setenv("PORT", "9000")
	t.Setenv("HOST", "somewhere")
	t.Setenv("URL", "https://stray.example.com")
	t.Setenv("PREFIX", "v2")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	require.Equal(t, "citizens-link.db", cfg.Database.Path)
	require.Equal(t, "3306", cfg.Database.Port)
	require.Empty(t, cfg.Database.Host)
	require.Empty(t, cfg.Redis.Port)
	require.False(t, cfg.Redis.Enabled())
	require.Empty(t, cfg.Supabase.URL)
	require.Equal(t, "citizens-link/rankings", cfg.S3.Prefix)

	// 顶层字段本来就读裸变量
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, "v2", cfg.Prefix)
}

func TestLoadPrefixedNestedEnv(t *testing.T) {
	t.Setenv("DB_PATH", "/data/cl.db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "citizens")
	t.Setenv("DB_SSL_MODE", "require")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("JWT_ACCESS_SECRET", "from-env")
	t.Setenv("RANKING_POINT_POLICY", "snapshot")
	t.Setenv("RANKING_CACHE_TTL", "1m")
	t.Setenv("REPORT_ALLOW_QR_APPROVAL", "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	require.Equal(t, "/data/cl.db", cfg.Database.Path)
	require.Equal(t, "5432", cfg.Database.Port)
	require.Equal(t, "citizens", cfg.Database.Name)
	require.Equal(t, "require", cfg.Database.SSLMode)
	require.True(t, cfg.Redis.Enabled())
	require.Equal(t, "from-env", cfg.JWT.AccessSecret)
	require.Equal(t, "snapshot", cfg.Ranking.PointPolicy)
	require.Equal(t, time.Minute, cfg.Ranking.CacheTTL)
	require.False(t, cfg.Report.AllowQRApproval)
}
