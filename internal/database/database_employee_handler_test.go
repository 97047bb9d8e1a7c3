package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"heron/internal/api/dto"
	"heron/internal/domain"
)

func seedEmployees(t *testing.T) {
	t.Helper()

	join := func(daysFromNow int) *time.Time {
		d := time.Now().AddDate(0, 0, daysFromNow)
		return &d
	}

	employees := []domain.Employee{
		{
			Name:       "Tanaka Taro",
			Department: strPtr("Engineering"),
			HRStatus:   strPtr("pending"),
			JoinDate:   join(10),
		},
		{
			Name:       "Suzuki Hanako",
			Department: strPtr("Engineering"),
			ITStatus:   strPtr("pending"),
			JoinDate:   join(40),
		},
		{
			Name:       "Sato Jiro",
			Department: strPtr("Sales"),
			HRStatus:   strPtr("done"),
			JoinDate:   join(-30),
		},
	}
	if err := InsertEmployees(context.Background(), employees); err != nil {
		t.Fatalf("seed employees: %v", err)
	}
}

func TestGetEmployeePage_NameFilter(t *testing.T) {
	setupTestDB(t)
	seedEmployees(t)

	rows, total, err := GetEmployeePage(context.Background(), dto.EmployeeFilter{Name: "Tanaka"})
	if err != nil {
		t.Fatalf("GetEmployeePage: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("expected one match, got total=%d rows=%d", total, len(rows))
	}
	if rows[0].Name != "Tanaka Taro" {
		t.Fatalf("unexpected row: %s", rows[0].Name)
	}
}

func TestGetEmployeePage_StatusFilterSpansAllStatusColumns(t *testing.T) {
	setupTestDB(t)
	seedEmployees(t)

	// "pending" lives in hr_status for one row and it_status for another.
	_, total, err := GetEmployeePage(context.Background(), dto.EmployeeFilter{Status: "pending"})
	if err != nil {
		t.Fatalf("GetEmployeePage: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 pending rows, got %d", total)
	}
}

func TestGetEmployeePage_PaginationCountsAllMatches(t *testing.T) {
	setupTestDB(t)
	seedEmployees(t)

	rows, total, err := GetEmployeePage(context.Background(), dto.EmployeeFilter{
		Department: "Engineering",
		Page:       1,
		PageSize:   1,
		SortBy:     "name",
		SortOrder:  "asc",
	})
	if err != nil {
		t.Fatalf("GetEmployeePage: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected total 2, got %d", total)
	}
	if len(rows) != 1 || rows[0].Name != "Suzuki Hanako" {
		t.Fatalf("unexpected first page: %+v", rows)
	}
}

func TestGetEmployeePage_RejectsUnknownSortColumn(t *testing.T) {
	setupTestDB(t)
	seedEmployees(t)

	// An unknown column must not leak into the ORDER BY clause.
	_, _, err := GetEmployeePage(context.Background(), dto.EmployeeFilter{SortBy: "name; DROP TABLE employees"})
	if err != nil {
		t.Fatalf("GetEmployeePage: %v", err)
	}

	var count int64
	if err := DB.Model(&domain.Employee{}).Count(&count).Error; err != nil || count != 3 {
		t.Fatalf("employees table damaged: count=%d err=%v", count, err)
	}
}

func TestUpdateEmployeeFields_MissingRow(t *testing.T) {
	setupTestDB(t)

	err := UpdateEmployeeFields(context.Background(), 999, map[string]any{"name": "Nobody"})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUpdateEmployeeFields_AppliesPatch(t *testing.T) {
	setupTestDB(t)
	seedEmployees(t)

	var row domain.Employee
	if err := DB.Where("name = ?", "Tanaka Taro").First(&row).Error; err != nil {
		t.Fatalf("load seed row: %v", err)
	}

	patch := map[string]any{"department": "Sales", "age": int64(30)}
	if err := UpdateEmployeeFields(context.Background(), row.ID, patch); err != nil {
		t.Fatalf("UpdateEmployeeFields: %v", err)
	}

	updated, err := GetEmployeeSnapshot(context.Background(), row.ID)
	if err != nil {
		t.Fatalf("GetEmployeeSnapshot: %v", err)
	}
	if updated.Department == nil || *updated.Department != "Sales" {
		t.Fatalf("department not updated: %+v", updated.Department)
	}
	if updated.Age == nil || *updated.Age != 30 {
		t.Fatalf("age not updated: %+v", updated.Age)
	}
}

func TestDeleteEmployee_MissingRow(t *testing.T) {
	setupTestDB(t)

	if err := DeleteEmployee(context.Background(), 42); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGetEmployeeDetail_PreloadsHistory(t *testing.T) {
	setupTestDB(t)

	author := domain.User{Email: "hr@example.com", Password: "password123", Name: "HR", Role: "user"}
	if err := CreateUser(context.Background(), &author); err != nil {
		t.Fatalf("create user: %v", err)
	}

	employee := domain.Employee{Name: "Yamada"}
	if err := CreateEmployee(context.Background(), &employee); err != nil {
		t.Fatalf("create employee: %v", err)
	}

	comment := domain.Comment{EmployeeID: employee.ID, Content: "Laptop ordered", CreatedBy: author.ID}
	if err := CreateComment(context.Background(), &comment); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	records := []domain.ChangeRecord{{
		EmployeeID: employee.ID,
		FieldName:  "department",
		NewValue:   strPtr("Engineering"),
		ChangedBy:  author.ID,
	}}
	if err := InsertChangeRecords(context.Background(), records); err != nil {
		t.Fatalf("insert change records: %v", err)
	}

	detail, err := GetEmployeeDetail(context.Background(), employee.ID)
	if err != nil {
		t.Fatalf("GetEmployeeDetail: %v", err)
	}
	if len(detail.Comments) != 1 || detail.Comments[0].Author.Email != "hr@example.com" {
		t.Fatalf("comments not preloaded: %+v", detail.Comments)
	}
	if len(detail.Changes) != 1 || detail.Changes[0].Author.Email != "hr@example.com" {
		t.Fatalf("changes not preloaded: %+v", detail.Changes)
	}
}

func TestListEmployeesForExport_HonorsFilters(t *testing.T) {
	setupTestDB(t)
	seedEmployees(t)

	rows, err := ListEmployeesForExport(context.Background(), dto.EmployeeFilter{Department: "Sales"})
	if err != nil {
		t.Fatalf("ListEmployeesForExport: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Sato Jiro" {
		t.Fatalf("unexpected export rows: %+v", rows)
	}
}
