package database

import (
	"context"
	"fmt"

	"heron/internal/domain"
)

// InsertChangeRecords appends audit entries for one update call. Entries are
// never modified after this insert.
func InsertChangeRecords(ctx context.Context, records []domain.ChangeRecord) error {
	if len(records) == 0 {
		return nil
	}
	if DB == nil {
		return fmt.Errorf("database: connection was not configured")
	}

	if err := DB.WithContext(ctx).Create(&records).Error; err != nil {
		return fmt.Errorf("change history: insert rows: %w", err)
	}
	return nil
}

// GetChangeHistory returns the audit trail of one employee, newest first.
func GetChangeHistory(ctx context.Context, employeeID uint, limit int) ([]domain.ChangeRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	var records []domain.ChangeRecord
	err := DB.WithContext(ctx).
		Preload("Author").
		Where("employee_id = ?", employeeID).
		Order("changed_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("change history: fetch rows: %w", err)
	}
	return records, nil
}
