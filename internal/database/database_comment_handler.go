package database

import (
	"context"
	"fmt"

	"heron/internal/domain"
)

func CreateComment(ctx context.Context, comment *domain.Comment) error {
	if err := DB.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("comments: insert row: %w", err)
	}

	// Reload with the author so the response can show who wrote it.
	return DB.WithContext(ctx).Preload("Author").First(comment, comment.ID).Error
}

func GetCommentsForEmployee(ctx context.Context, employeeID uint) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := DB.WithContext(ctx).
		Preload("Author").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("comments: fetch rows: %w", err)
	}
	return comments, nil
}
