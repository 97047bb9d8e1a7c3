package database

import (
	"context"
	"testing"

	"heron/internal/domain"
)

func TestGetUserSettings_DefaultsToEmptyDocument(t *testing.T) {
	setupTestDB(t)

	setting, err := GetUserSettings(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetUserSettings: %v", err)
	}
	if setting.UserID != 5 || setting.Settings != "{}" {
		t.Fatalf("unexpected default: %+v", setting)
	}
}

func TestUpsertUserSettings_OverwritesExistingDocument(t *testing.T) {
	setupTestDB(t)

	user := domain.User{Email: "prefs@example.com", Password: "password123", Name: "Prefs", Role: "user"}
	if err := CreateUser(context.Background(), &user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, err := UpsertUserSettings(context.Background(), user.ID, `{"theme":"light"}`); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if _, err := UpsertUserSettings(context.Background(), user.ID, `{"theme":"dark"}`); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	setting, err := GetUserSettings(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUserSettings: %v", err)
	}
	if setting.Settings != `{"theme":"dark"}` {
		t.Fatalf("expected latest document, got %s", setting.Settings)
	}

	var count int64
	if err := DB.Model(&domain.UserSetting{}).Count(&count).Error; err != nil || count != 1 {
		t.Fatalf("expected single settings row, count=%d err=%v", count, err)
	}
}

func TestAssignPermissions_ReplacesExistingSet(t *testing.T) {
	setupTestDB(t)

	admin := domain.User{Email: "admin@example.com", Password: "password123", Name: "Admin", Role: "admin"}
	user := domain.User{Email: "member@example.com", Password: "password123", Name: "Member", Role: "user"}
	for _, u := range []*domain.User{&admin, &user} {
		if err := CreateUser(context.Background(), u); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	permissions := []domain.Permission{
		{Name: "viewer", CanViewForecast: true},
		{Name: "editor", CanViewForecast: true, CanEditForecast: true},
	}
	if err := DB.Create(&permissions).Error; err != nil {
		t.Fatalf("create permissions: %v", err)
	}

	if err := AssignPermissions(context.Background(), user.ID, []uint{permissions[0].ID}, admin.ID); err != nil {
		t.Fatalf("first assignment: %v", err)
	}
	if err := AssignPermissions(context.Background(), user.ID, []uint{permissions[1].ID}, admin.ID); err != nil {
		t.Fatalf("second assignment: %v", err)
	}

	users, err := ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}

	for _, u := range users {
		if u.ID != user.ID {
			continue
		}
		if len(u.Permissions) != 1 || u.Permissions[0].Name != "editor" {
			t.Fatalf("expected replaced permission set, got %+v", u.Permissions)
		}
		return
	}
	t.Fatal("member user missing from list")
}
