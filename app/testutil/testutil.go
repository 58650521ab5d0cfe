package testutil

import (
	"testing"

	"timeclock/app/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenTestDB opens an in-memory SQLite database with migrations
// applied. Shared cache keeps every connection on the same database.
// Caller cleanup is registered automatically.
func OpenTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.Attendance{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}
