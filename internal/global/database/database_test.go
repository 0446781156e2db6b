package database

import (
	"citizens-link/config"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteMigrates(t *testing.T) {
	db, err := Open(config.Database{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")}, config.ModeRelease)
	require.NoError(t, err)
	require.True(t, db.Migrator().HasTable("activity_types"))
	require.True(t, db.Migrator().HasTable("activity_reports"))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(config.Database{Driver: "oracle"}, config.ModeRelease)
	require.Error(t, err)
}
