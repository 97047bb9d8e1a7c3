package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"heron/internal/domain"
)

// Master-data handlers for the settings screens: departments, roles,
// categories and their fields. All lists are ordered by display_order and
// restricted to active rows; creation appends to the end of the ordering.

func nextDisplayOrder(tx *gorm.DB, model any) (int, error) {
	var maxOrder int
	err := tx.Model(model).Select("COALESCE(MAX(display_order), 0)").Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

func ListDepartments(ctx context.Context) ([]domain.Department, error) {
	var departments []domain.Department
	err := DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&departments).Error
	if err != nil {
		return nil, fmt.Errorf("departments: fetch rows: %w", err)
	}
	return departments, nil
}

func CreateDepartment(ctx context.Context, department *domain.Department) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := nextDisplayOrder(tx, &domain.Department{})
		if err != nil {
			return err
		}
		department.DisplayOrder = order
		department.IsActive = true
		return tx.Create(department).Error
	})
}

func UpdateDepartment(ctx context.Context, id uint, updates map[string]any) (domain.Department, error) {
	var department domain.Department
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&department, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&department).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&department, id).Error
	})
	return department, err
}

// DeactivateDepartment soft-deletes: the row disappears from lists but stays
// referenced by historical employee rows.
func DeactivateDepartment(ctx context.Context, id uint) error {
	return deactivate(ctx, &domain.Department{}, id)
}

func ListRoles(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	err := DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("roles: fetch rows: %w", err)
	}
	return roles, nil
}

func CreateRole(ctx context.Context, role *domain.Role) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := nextDisplayOrder(tx, &domain.Role{})
		if err != nil {
			return err
		}
		role.DisplayOrder = order
		role.IsActive = true
		return tx.Create(role).Error
	})
}

func UpdateRole(ctx context.Context, id uint, updates map[string]any) (domain.Role, error) {
	var role domain.Role
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&role, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&role).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&role, id).Error
	})
	return role, err
}

func DeactivateRole(ctx context.Context, id uint) error {
	return deactivate(ctx, &domain.Role{}, id)
}

func ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("categories: fetch rows: %w", err)
	}
	return categories, nil
}

func CreateCategory(ctx context.Context, category *domain.Category) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := nextDisplayOrder(tx, &domain.Category{})
		if err != nil {
			return err
		}
		category.DisplayOrder = order
		category.IsActive = true
		return tx.Create(category).Error
	})
}

func UpdateCategory(ctx context.Context, id uint, updates map[string]any) (domain.Category, error) {
	var category domain.Category
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&category).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&category, id).Error
	})
	return category, err
}

func DeactivateCategory(ctx context.Context, id uint) error {
	return deactivate(ctx, &domain.Category{}, id)
}

// ListFields returns active, unarchived fields, optionally scoped to one
// category.
func ListFields(ctx context.Context, categoryID uint) ([]domain.Field, error) {
	tx := DB.WithContext(ctx).
		Where("is_active = ? AND is_archived = ?", true, false)
	if categoryID != 0 {
		tx = tx.Where("category_id = ?", categoryID)
	}

	var fields []domain.Field
	if err := tx.Order("display_order ASC").Find(&fields).Error; err != nil {
		return nil, fmt.Errorf("fields: fetch rows: %w", err)
	}
	return fields, nil
}

func CreateField(ctx context.Context, field *domain.Field) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := nextDisplayOrder(tx, &domain.Field{})
		if err != nil {
			return err
		}
		field.DisplayOrder = order
		field.IsActive = true
		return tx.Create(field).Error
	})
}

func UpdateField(ctx context.Context, id uint, updates map[string]any) (domain.Field, error) {
	var field domain.Field
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&field, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&field).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&field, id).Error
	})
	return field, err
}

// ArchiveField keeps the column definition around for stored values while
// hiding it from the editor.
func ArchiveField(ctx context.Context, id uint) error {
	result := DB.WithContext(ctx).
		Model(&domain.Field{}).
		Where("id = ?", id).
		Update("is_archived", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func deactivate(ctx context.Context, model any, id uint) error {
	result := DB.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
