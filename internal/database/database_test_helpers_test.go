package database

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"heron/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
		t.Fatalf("set busy timeout: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Permission{},
		&domain.UserPermission{},
		&domain.Employee{},
		&domain.Comment{},
		&domain.ChangeRecord{},
		&domain.Department{},
		&domain.Role{},
		&domain.Category{},
		&domain.Field{},
		&domain.IPRestriction{},
		&domain.UserSetting{},
		&domain.LoginRecord{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	DB = db

	t.Cleanup(func() {
		DB = nil
	})

	return db
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }
