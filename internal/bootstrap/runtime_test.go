package bootstrap

import (
	"testing"

	"comunidad/internal/config"
	"comunidad/internal/database"
	"comunidad/internal/models"
	"comunidad/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countUsers(t *testing.T, cfg *config.Config) int64 {
	t.Helper()
	db := testutil.NewSQLiteDB(t, database.PersistentModels()...)
	require.NoError(t, seedDemoIfEmpty(cfg, db))
	require.NoError(t, seedDemoIfEmpty(cfg, db))

	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	return n
}

func TestSeedDemoIfEmpty(t *testing.T) {
	// Second call sees existing users and leaves the dataset alone.
	assert.Equal(t, int64(5), countUsers(t, &config.Config{Env: "development"}))
}

func TestSeedDemoIfEmpty_SkipsProduction(t *testing.T) {
	assert.Zero(t, countUsers(t, &config.Config{Env: "production"}))
}
