package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"heron/internal/api/dto"
	"heron/internal/domain"
)

const defaultEmployeePageSize = 25

// employeeSortColumns whitelists the columns the list screen may sort by.
var employeeSortColumns = map[string]struct{}{
	"created_at":       {},
	"updated_at":       {},
	"name":             {},
	"name_kana":        {},
	"employee_number":  {},
	"department":       {},
	"join_date":        {},
	"recruitment_cost": {},
	"recruitment_type": {},
	"employment_type":  {},
}

func applyEmployeeFilters(tx *gorm.DB, filter dto.EmployeeFilter) *gorm.DB {
	if filter.Name != "" {
		tx = tx.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Department != "" {
		tx = tx.Where("department = ?", filter.Department)
	}
	if filter.RecruitmentType != "" {
		tx = tx.Where("recruitment_type = ?", filter.RecruitmentType)
	}
	if filter.DateFrom != "" {
		tx = tx.Where("join_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		tx = tx.Where("join_date <= ?", filter.DateTo)
	}
	if filter.Status != "" {
		tx = tx.Where(
			"hr_status = ? OR it_status = ? OR hr_admin_status = ?",
			filter.Status, filter.Status, filter.Status,
		)
	}
	return tx
}

// GetEmployeePage returns one page of the forecast table plus the total row
// count under the same filters.
func GetEmployeePage(ctx context.Context, filter dto.EmployeeFilter) ([]domain.Employee, int64, error) {
	if DB == nil {
		return nil, 0, fmt.Errorf("database: connection was not configured")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = defaultEmployeePageSize
	}

	base := applyEmployeeFilters(DB.WithContext(ctx).Model(&domain.Employee{}), filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("employees: count rows: %w", err)
	}

	sortBy := filter.SortBy
	if _, ok := employeeSortColumns[sortBy]; !ok {
		sortBy = "created_at"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	var employees []domain.Employee
	err := base.Session(&gorm.Session{}).
		Order(fmt.Sprintf("%s %s", sortBy, direction)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&employees).Error
	if err != nil {
		return nil, 0, fmt.Errorf("employees: fetch page: %w", err)
	}

	return employees, total, nil
}

// GetEmployeeDetail loads one row with its comments and change history, both
// with the acting users preloaded for display.
func GetEmployeeDetail(ctx context.Context, id uint) (domain.Employee, error) {
	var employee domain.Employee
	err := DB.WithContext(ctx).
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("comments.created_at DESC")
		}).
		Preload("Comments.Author").
		Preload("Changes", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("change_history.changed_at DESC")
		}).
		Preload("Changes.Author").
		First(&employee, id).Error
	return employee, err
}

// GetEmployeeSnapshot reads the bare row without relations, used as the
// `before` baseline for diffing.
func GetEmployeeSnapshot(ctx context.Context, id uint) (domain.Employee, error) {
	var employee domain.Employee
	err := DB.WithContext(ctx).First(&employee, id).Error
	return employee, err
}

func CreateEmployee(ctx context.Context, employee *domain.Employee) error {
	return DB.WithContext(ctx).Create(employee).Error
}

// UpdateEmployeeFields applies a column patch to one row. The caller has
// already filtered the map to patchable columns.
func UpdateEmployeeFields(ctx context.Context, id uint, patch map[string]any) error {
	if len(patch) == 0 {
		return nil
	}

	result := DB.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", id).
		Updates(patch)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func DeleteEmployee(ctx context.Context, id uint) error {
	result := DB.WithContext(ctx).Delete(&domain.Employee{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// InsertEmployees bulk-creates imported rows in one transaction so a partial
// CSV import never half-commits.
func InsertEmployees(ctx context.Context, employees []domain.Employee) error {
	if len(employees) == 0 {
		return nil
	}
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&employees).Error
	})
}

// ListEmployeesForExport fetches every row matching the filter, ordered the
// same way the list screen shows them.
func ListEmployeesForExport(ctx context.Context, filter dto.EmployeeFilter) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := applyEmployeeFilters(DB.WithContext(ctx).Model(&domain.Employee{}), filter).
		Order("created_at DESC").
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("employees: export query: %w", err)
	}
	return employees, nil
}
