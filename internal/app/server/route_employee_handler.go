package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"heron/internal/api/dto"
	"heron/internal/audit"
	"heron/internal/auth"
	"heron/internal/config"
	"heron/internal/database"
	"heron/internal/domain"
	"heron/internal/support"
)

func parseEmployeeFilter(r *http.Request) dto.EmployeeFilter {
	query := r.URL.Query()

	filter := dto.EmployeeFilter{
		Name:            query.Get("name"),
		Department:      query.Get("department"),
		Status:          query.Get("status"),
		RecruitmentType: query.Get("recruitmentType"),
		DateFrom:        query.Get("dateFrom"),
		DateTo:          query.Get("dateTo"),
		SortBy:          query.Get("sortBy"),
		SortOrder:       query.Get("sortOrder"),
	}

	filter.Page, _ = strconv.Atoi(query.Get("page"))
	if filter.Page < 1 {
		filter.Page = 1
	}

	filter.PageSize, _ = strconv.Atoi(query.Get("pageSize"))
	if filter.PageSize < 1 {
		filter.PageSize = int(config.GetConfig().Defaults.PageSize)
	}
	if filter.PageSize < 1 {
		filter.PageSize = 25
	}

	return filter
}

func getEmployeePage(w http.ResponseWriter, r *http.Request) {
	filter := parseEmployeeFilter(r)

	rows, total, err := database.GetEmployeePage(r.Context(), filter)
	if err != nil {
		log.Error("Could not load employee page", "error", err.Error())
		writeError(w, "Could not load employees", http.StatusInternalServerError)
		return
	}

	totalPages := (total + int64(filter.PageSize) - 1) / int64(filter.PageSize)

	writeJSON(w, http.StatusOK, dto.EmployeePage{
		Employees: rows,
		Pagination: dto.Pagination{
			Page:       filter.Page,
			Limit:      filter.PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// validateEmployeeColumns checks the bounds the original intake form enforces.
// Values arrive JSON-decoded, so numbers are float64. Returns "" when valid.
func validateEmployeeColumns(updates map[string]any) string {
	if raw, ok := updates["name"]; ok {
		name, isString := raw.(string)
		if !isString || name == "" {
			return "Name is required"
		}
	}
	if raw, ok := updates["age"]; ok && raw != nil {
		age, ok := raw.(float64)
		if !ok || age < 18 || age > 100 {
			return "Age must be between 18 and 100"
		}
	}
	if raw, ok := updates["recruitment_cost"]; ok && raw != nil {
		cost, ok := raw.(float64)
		if !ok || cost < 0 {
			return "Recruitment cost cannot be negative"
		}
	}
	if raw, ok := updates["recruitment_type"]; ok && raw != nil {
		value, ok := raw.(string)
		if !ok || (value != "" && !domain.RecruitmentType(value).Valid()) {
			return "Invalid recruitment type"
		}
	}
	if raw, ok := updates["employment_type"]; ok && raw != nil {
		value, ok := raw.(string)
		if !ok || (value != "" && !domain.EmploymentType(value).Valid()) {
			return "Invalid employment type"
		}
	}
	if raw, ok := updates["join_date"]; ok && raw != nil {
		value, ok := raw.(string)
		if !ok {
			return "Invalid join date"
		}
		if value != "" {
			if _, err := time.Parse(domain.JoinDateLayout, value); err != nil {
				return "Join date must be formatted as 2006-01-02"
			}
		}
	}
	return ""
}

func getEmployeeDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		writeError(w, "Invalid employee id", http.StatusBadRequest)
		return
	}

	employee, err := database.GetEmployeeDetail(r.Context(), uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, "Employee not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("Could not load employee", "id", id, "error", err.Error())
		writeError(w, "Could not load employee", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

func createEmployee(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var employee domain.Employee
	if err := json.NewDecoder(r.Body).Decode(&employee); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if employee.Name == "" {
		writeError(w, "Name is required", http.StatusBadRequest)
		return
	}
	if employee.Age != nil && (*employee.Age < 18 || *employee.Age > 100) {
		writeError(w, "Age must be between 18 and 100", http.StatusBadRequest)
		return
	}
	if employee.RecruitmentCost != nil && *employee.RecruitmentCost < 0 {
		writeError(w, "Recruitment cost cannot be negative", http.StatusBadRequest)
		return
	}
	if employee.RecruitmentType != nil && !employee.RecruitmentType.Valid() {
		writeError(w, "Invalid recruitment type", http.StatusBadRequest)
		return
	}
	if employee.EmploymentType != nil && !employee.EmploymentType.Valid() {
		writeError(w, "Invalid employment type", http.StatusBadRequest)
		return
	}

	employee.CreatedBy = &userID

	if err := database.CreateEmployee(r.Context(), &employee); err != nil {
		log.Error("Could not create employee", "error", err.Error())
		writeError(w, "Could not create employee", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, employee)
}

func patchEmployee(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		writeError(w, "Invalid employee id", http.StatusBadRequest)
		return
	}

	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Field names double as column names; anything outside the whitelist is
	// dropped before both the write and the diff.
	updates := make(map[string]any, len(patch))
	for field, value := range patch {
		if _, ok := domain.PatchableEmployeeFields[field]; !ok {
			continue
		}
		updates[field] = value
	}
	if len(updates) == 0 {
		writeError(w, "No updatable fields in request", http.StatusBadRequest)
		return
	}
	if problem := validateEmployeeColumns(updates); problem != "" {
		writeError(w, problem, http.StatusBadRequest)
		return
	}

	before, err := database.GetEmployeeSnapshot(r.Context(), uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, "Employee not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("Could not load employee snapshot", "id", id, "error", err.Error())
		writeError(w, "Could not update employee", http.StatusInternalServerError)
		return
	}

	// updated_by is stamped server-side and kept out of the diffed map so it
	// never shows up as a change record of its own.
	write := make(map[string]any, len(updates)+1)
	for field, value := range updates {
		write[field] = value
	}
	write["updated_by"] = userID

	if err := database.UpdateEmployeeFields(r.Context(), uint(id), write); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, "Employee not found", http.StatusNotFound)
			return
		}
		log.Error("Could not update employee", "id", id, "error", err.Error())
		writeError(w, "Could not update employee", http.StatusInternalServerError)
		return
	}

	// Change history is best effort and must never fail the update itself.
	changes := audit.Diff(uint(id), before.Snapshot(), updates, userID)
	audit.Record(r.Context(), changes)

	employee, err := database.GetEmployeeDetail(r.Context(), uint(id))
	if err != nil {
		log.Error("Could not reload employee", "id", id, "error", err.Error())
		writeError(w, "Could not reload employee", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

// getEmployeeChangeHistory serves the audit trail on its own so the history
// view can page without reloading the full detail payload.
func getEmployeeChangeHistory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		writeError(w, "Invalid employee id", http.StatusBadRequest)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := database.GetChangeHistory(r.Context(), uint(id), limit)
	if err != nil {
		log.Error("Could not load change history", "id", id, "error", err.Error())
		writeError(w, "Could not load change history", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		writeError(w, "Invalid employee id", http.StatusBadRequest)
		return
	}

	if err := database.DeleteEmployee(r.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, "Employee not found", http.StatusNotFound)
			return
		}
		log.Error("Could not delete employee", "id", id, "error", err.Error())
		writeError(w, "Could not delete employee", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func importEmployees(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, "Failed to retrieve file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	log.Debugf("Uploaded file: %s (%d bytes)", fileHeader.Filename, fileHeader.Size)

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	employees, problems := support.ParseEmployeeCSV(string(content))
	if len(employees) == 0 && len(problems) == 0 {
		writeError(w, "File contains no employee rows", http.StatusBadRequest)
		return
	}

	maxRows := int(config.GetConfig().Import.MaxRows)
	if maxRows > 0 && len(employees) > maxRows {
		writeError(w, fmt.Sprintf("Import exceeds the limit of %d rows", maxRows), http.StatusBadRequest)
		return
	}

	for i := range employees {
		employees[i].CreatedBy = &userID
	}

	if err := database.InsertEmployees(r.Context(), employees); err != nil {
		log.Error("Could not import employees", "error", err.Error())
		writeError(w, "Could not import employees", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, dto.ImportResult{
		Imported: len(employees),
		Skipped:  len(problems),
		Problems: problems,
	})
}

func exportEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := database.ListEmployeesForExport(r.Context(), parseEmployeeFilter(r))
	if err != nil {
		log.Error("Could not load employees for export", "error", err.Error())
		writeError(w, "Could not export employees", http.StatusInternalServerError)
		return
	}

	content, err := support.EmployeesToCSV(employees)
	if err != nil {
		log.Error("Could not render employee csv", "error", err.Error())
		writeError(w, "Could not export employees", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("employees_%s.csv", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}
