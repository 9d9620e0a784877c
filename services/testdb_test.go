package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"pethotel-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a fresh shared in-memory sqlite database, migrated with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:pethotel_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A single connection keeps the in-memory database alive and avoids sqlite
	// write-lock errors in the concurrency tests.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Customer{},
		&models.Pet{},
		&models.Room{},
		&models.Reservation{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createTestRoom(t *testing.T, db *gorm.DB, category string, number int) models.Room {
	t.Helper()
	room := models.Room{Category: category, Number: number, Status: models.RoomStatusAvailable}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to create test room: %v", err)
	}
	return room
}
