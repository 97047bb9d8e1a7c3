package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"heron/internal/auth"
	"heron/internal/database"
	"heron/internal/domain"
)

func setupServerTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Employee{},
		&domain.Comment{},
		&domain.ChangeRecord{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	database.DB = db
	t.Cleanup(func() {
		database.DB = nil
	})
}

func authedRequest(t *testing.T, method, target string, body string, userID uint, role string) *http.Request {
	t.Helper()

	token, err := auth.GenerateJWT(userID, role)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Authorization", "Bearer "+token)
	request.Header.Set("Content-Type", "application/json")
	return request
}

func TestPatchEmployee_WritesChangeHistory(t *testing.T) {
	setupServerTestDB(t)

	actor := domain.User{Email: "hr@example.com", Password: "password123", Name: "HR", Role: "user"}
	if err := database.DB.Create(&actor).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	department := "Engineering"
	employee := domain.Employee{Name: "Tanaka Taro", Department: &department}
	if err := database.DB.Create(&employee).Error; err != nil {
		t.Fatalf("create employee: %v", err)
	}

	body := `{"department":"Sales","age":30,"unknown_field":"ignored"}`
	request := authedRequest(t, http.MethodPatch, "/employees/"+strconv.Itoa(int(employee.ID)), body, actor.ID, "user")
	request.SetPathValue("id", strconv.Itoa(int(employee.ID)))
	recorder := httptest.NewRecorder()

	patchEmployee(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var updated domain.Employee
	if err := json.Unmarshal(recorder.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.Department == nil || *updated.Department != "Sales" {
		t.Fatalf("department not updated in response: %+v", updated.Department)
	}

	var stored domain.Employee
	if err := database.DB.First(&stored, employee.ID).Error; err != nil {
		t.Fatalf("reload employee: %v", err)
	}
	if stored.UpdatedBy == nil || *stored.UpdatedBy != actor.ID {
		t.Fatalf("updated_by not stamped with acting user: %+v", stored.UpdatedBy)
	}

	var records []domain.ChangeRecord
	if err := database.DB.Where("employee_id = ?", employee.ID).Find(&records).Error; err != nil {
		t.Fatalf("load change history: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 change records, got %d: %+v", len(records), records)
	}
	for _, record := range records {
		if record.ChangedBy != actor.ID {
			t.Fatalf("change attributed to wrong user: %+v", record)
		}
		if record.FieldName != "department" && record.FieldName != "age" {
			t.Fatalf("unexpected field in history: %q", record.FieldName)
		}
	}
}

func TestCreateEmployee_StampsCreatedBy(t *testing.T) {
	setupServerTestDB(t)

	actor := domain.User{Email: "hr@example.com", Password: "password123", Name: "HR", Role: "user"}
	if err := database.DB.Create(&actor).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	request := authedRequest(t, http.MethodPost, "/employees", `{"name":"Yamada"}`, actor.ID, "user")
	recorder := httptest.NewRecorder()

	createEmployee(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var stored domain.Employee
	if err := database.DB.Where("name = ?", "Yamada").First(&stored).Error; err != nil {
		t.Fatalf("reload employee: %v", err)
	}
	if stored.CreatedBy == nil || *stored.CreatedBy != actor.ID {
		t.Fatalf("created_by not stamped with acting user: %+v", stored.CreatedBy)
	}
}

func TestPatchEmployee_NoOpPatchLeavesHistoryEmpty(t *testing.T) {
	setupServerTestDB(t)

	actor := domain.User{Email: "hr@example.com", Password: "password123", Name: "HR", Role: "user"}
	if err := database.DB.Create(&actor).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	department := "Engineering"
	employee := domain.Employee{Name: "Tanaka Taro", Department: &department}
	if err := database.DB.Create(&employee).Error; err != nil {
		t.Fatalf("create employee: %v", err)
	}

	body := `{"department":"Engineering"}`
	request := authedRequest(t, http.MethodPatch, "/employees/"+strconv.Itoa(int(employee.ID)), body, actor.ID, "user")
	request.SetPathValue("id", strconv.Itoa(int(employee.ID)))
	recorder := httptest.NewRecorder()

	patchEmployee(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var count int64
	if err := database.DB.Model(&domain.ChangeRecord{}).Count(&count).Error; err != nil || count != 0 {
		t.Fatalf("no-op patch must not write history, count=%d err=%v", count, err)
	}
}

func TestCreateEmployee_RejectsOutOfRangeAge(t *testing.T) {
	setupServerTestDB(t)

	request := authedRequest(t, http.MethodPost, "/employees", `{"name":"Too Young","age":15}`, 1, "user")
	recorder := httptest.NewRecorder()

	createEmployee(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestPatchEmployee_MissingEmployee(t *testing.T) {
	setupServerTestDB(t)

	request := authedRequest(t, http.MethodPatch, "/employees/999", `{"name":"Ghost"}`, 1, "user")
	request.SetPathValue("id", "999")
	recorder := httptest.NewRecorder()

	patchEmployee(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
}
