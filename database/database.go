package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gigtrack-api/models"
)

// Initialize opens the database. driver is "mysql" for a server deployment or
// "sqlite" for a single-driver install where databaseURL is a file path.
func Initialize(driver, databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(databaseURL)
	case "sqlite":
		dialector = sqlite.Open(databaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logLevel),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite" {
		// SQLite allows one writer; a single connection keeps transactions serialized
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Car{},
		&models.Settings{},
		&models.FuelLog{},
		&models.TripLog{},
		&models.ExpenseLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Period queries filter each log table by user then date
	indexes := []struct{ name, table string }{
		{"idx_fuel_logs_user_date", "fuel_logs"},
		{"idx_trip_logs_user_date", "trip_logs"},
		{"idx_expense_logs_user_date", "expense_logs"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}
		if err := db.Exec(fmt.Sprintf("CREATE INDEX %s ON %s(user_id, date)", idx.name, idx.table)).Error; err != nil {
			return fmt.Errorf("index %s: %w", idx.name, err)
		}
	}

	return nil
}
