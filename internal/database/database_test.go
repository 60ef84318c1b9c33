package database

import (
	"testing"

	"comunidad/internal/config"
	"comunidad/internal/models"
	"comunidad/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestConfigurePool(t *testing.T) {
	db := testutil.NewSQLiteDB(t)

	err := configurePool(db, &config.Config{
		DBMaxOpenConns:        10,
		DBMaxIdleConns:        5,
		DBConnMaxLifetimeMins: 15,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	require.NoError(t, Migrate(db))

	for _, model := range PersistentModels() {
		assert.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}
	assert.True(t, db.Migrator().HasColumn(&models.Medication{}, "supplied_dates"))
	assert.False(t, db.Migrator().HasColumn(&models.Post{}, "replies_count"))
}

func TestDSN(t *testing.T) {
	dsn := DSN(&config.Config{
		DBHost: "db", DBPort: "5432", DBUser: "app", DBPassword: "secret", DBName: "comunidad",
	})
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=comunidad sslmode=disable", dsn)
}

func TestCustomGormLogger_LogMode(t *testing.T) {
	l := NewGormLogger()
	silent := l.LogMode(logger.Silent).(*CustomGormLogger)

	assert.Equal(t, logger.Silent, silent.Config.LogLevel)
	assert.Equal(t, logger.Warn, l.Config.LogLevel, "original logger must not change")
}
