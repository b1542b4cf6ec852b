// Package dbtest opens a migrated in-memory SQLite database for package tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/databases/schema"
)

// Open returns a fresh database and the registry it was migrated with.
// One connection only: SQLite in-memory databases are per connection, and a
// single connection also serializes concurrent tests the way row locks would.
func Open(t *testing.T) (*gorm.DB, *schema.Registry) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	reg := catalog.Build()
	if err := reg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db, reg
}
