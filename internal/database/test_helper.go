package database

import (
	"testing"

	"finsight/internal/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory model store for tests
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test model store: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.StoreConfig{
			MaxConnections: 1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test model store: %v", err)
	}

	return testDB
}

// CleanupTestDB clears persisted model state between tests
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	if err := db.Exec("DELETE FROM model_states").Error; err != nil {
		t.Logf("failed to cleanup model_states: %v", err)
	}
}
