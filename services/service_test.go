package services

import (
	"testing"
	"time"

	"menucatalog/config"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// One connection keeps the in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestSettings(t *testing.T) *config.Settings {
	t.Helper()
	return &config.Settings{
		Port:         "8080",
		MediaRoot:    t.TempDir(),
		MediaURL:     "/media/",
		ImageTimeout: 5 * time.Second,
		JWTSecret:    "test-secret",
	}
}
