package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"heron/internal/domain"
)

func GetUserFromId(id uint) domain.User {
	var user domain.User
	DB.Where("id = ?", id).First(&user)
	return user
}

func GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	err := DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return user, err
}

// ListUsers returns all accounts with their permission sets, newest first.
func ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := DB.WithContext(ctx).
		Preload("Permissions").
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("users: fetch rows: %w", err)
	}
	return users, nil
}

func CreateUser(ctx context.Context, user *domain.User) error {
	return DB.WithContext(ctx).Create(user).Error
}

// AssignPermissions replaces a user's permission set in one transaction.
func AssignPermissions(ctx context.Context, userID uint, permissionIDs []uint, assignedBy uint) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.UserPermission{}).Error; err != nil {
			return err
		}

		if len(permissionIDs) == 0 {
			return nil
		}

		rows := make([]domain.UserPermission, 0, len(permissionIDs))
		for _, permissionID := range permissionIDs {
			rows = append(rows, domain.UserPermission{
				UserID:       userID,
				PermissionID: permissionID,
				AssignedBy:   &assignedBy,
			})
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "permission_id"}},
			DoNothing: true,
		}).Create(&rows).Error
	})
}

func ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	var permissions []domain.Permission
	err := DB.WithContext(ctx).Order("id").Find(&permissions).Error
	if err != nil {
		return nil, fmt.Errorf("permissions: fetch rows: %w", err)
	}
	return permissions, nil
}

func UpdateUserPassword(ctx context.Context, userID uint, hashedPassword string) error {
	return DB.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("password", hashedPassword).Error
}

func TouchLastLogin(ctx context.Context, userID uint, at time.Time) error {
	return DB.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("last_login_at", at).Error
}

// GetUserSettings returns the stored settings document, or an empty one when
// the user has never saved.
func GetUserSettings(ctx context.Context, userID uint) (domain.UserSetting, error) {
	var setting domain.UserSetting
	err := DB.WithContext(ctx).Where("user_id = ?", userID).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserSetting{UserID: userID, Settings: "{}"}, nil
	}
	return setting, err
}

func UpsertUserSettings(ctx context.Context, userID uint, settings string) (domain.UserSetting, error) {
	setting := domain.UserSetting{UserID: userID, Settings: settings}
	err := DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"settings", "updated_at"}),
	}).Create(&setting).Error
	return setting, err
}

// InsertLoginRecord is best-effort sign-in bookkeeping.
func InsertLoginRecord(ctx context.Context, record *domain.LoginRecord) error {
	return DB.WithContext(ctx).Create(record).Error
}
