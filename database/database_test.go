package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"gigtrack-api/models"
)

func TestMigrate_SQLite(t *testing.T) {
	db, err := Initialize("sqlite", filepath.Join(t.TempDir(), "gigtrack.db"), logger.Silent)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	// migrating an existing schema is a no-op
	require.NoError(t, Migrate(db))

	for _, m := range []interface{}{&models.User{}, &models.Car{}, &models.Settings{}, &models.FuelLog{}, &models.TripLog{}, &models.ExpenseLog{}} {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasIndex("trip_logs", "idx_trip_logs_user_date"))
}

func TestInitialize_UnknownDriver(t *testing.T) {
	_, err := Initialize("oracle", "", logger.Silent)
	assert.Error(t, err)
}
