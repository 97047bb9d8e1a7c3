package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"heron/internal/domain"
)

// ListActiveIPRestrictions returns the rules the access gate evaluates.
func ListActiveIPRestrictions(ctx context.Context) ([]domain.IPRestriction, error) {
	if DB == nil {
		return nil, fmt.Errorf("database: connection was not configured")
	}

	var rules []domain.IPRestriction
	err := DB.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("ip restrictions: fetch active rules: %w", err)
	}
	return rules, nil
}

// ListIPRestrictions returns every rule for the settings screen, newest first.
func ListIPRestrictions(ctx context.Context) ([]domain.IPRestriction, error) {
	var rules []domain.IPRestriction
	err := DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("ip restrictions: fetch rules: %w", err)
	}
	return rules, nil
}

func CreateIPRestriction(ctx context.Context, rule *domain.IPRestriction) error {
	return DB.WithContext(ctx).Create(rule).Error
}

func UpdateIPRestriction(ctx context.Context, id uint, updates map[string]any) (domain.IPRestriction, error) {
	var rule domain.IPRestriction

	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rule, id).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&rule).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&rule, id).Error
	})
	return rule, err
}

func DeleteIPRestriction(ctx context.Context, id uint) error {
	result := DB.WithContext(ctx).Delete(&domain.IPRestriction{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
