package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"heron/internal/auth"
	"heron/internal/database"
	"heron/internal/domain"
)

func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// Shared request body for the name/display-order master tables.
type masterBody struct {
	Name         *string `json:"name"`
	DisplayOrder *int    `json:"displayOrder"`
	IsActive     *bool   `json:"isActive"`
}

func (b masterBody) updates() map[string]any {
	updates := map[string]any{}
	if b.Name != nil {
		updates["name"] = *b.Name
	}
	if b.DisplayOrder != nil {
		updates["display_order"] = *b.DisplayOrder
	}
	if b.IsActive != nil {
		updates["is_active"] = *b.IsActive
	}
	return updates
}

func getDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := database.ListDepartments(r.Context())
	if err != nil {
		log.Error("Could not load departments", "error", err.Error())
		writeError(w, "Could not load departments", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, departments)
}

func createDepartment(w http.ResponseWriter, r *http.Request) {
	var body masterBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == nil || *body.Name == "" {
		writeError(w, "Name is required", http.StatusBadRequest)
		return
	}

	department := domain.Department{Name: *body.Name, IsActive: true}
	if err := database.CreateDepartment(r.Context(), &department); err != nil {
		log.Error("Could not create department", "error", err.Error())
		writeError(w, "Could not create department", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, department)
}

func updateDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	var body masterBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	updates := body.updates()
	if len(updates) == 0 {
		writeError(w, "Nothing to update", http.StatusBadRequest)
		return
	}

	department, err := database.UpdateDepartment(r.Context(), id, updates)
	if err != nil {
		writeMasterError(w, "department", id, err)
		return
	}
	writeJSON(w, http.StatusOK, department)
}

func deleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := database.DeactivateDepartment(r.Context(), id); err != nil {
		writeMasterError(w, "department", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func getRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := database.ListRoles(r.Context())
	if err != nil {
		log.Error("Could not load roles", "error", err.Error())
		writeError(w, "Could not load roles", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, roles)
}

func createRole(w http.ResponseWriter, r *http.Request) {
	var body masterBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == nil || *body.Name == "" {
		writeError(w, "Name is required", http.StatusBadRequest)
		return
	}

	role := domain.Role{Name: *body.Name, IsActive: true}
	if err := database.CreateRole(r.Context(), &role); err != nil {
		log.Error("Could not create role", "error", err.Error())
		writeError(w, "Could not create role", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, role)
}

func updateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	var body masterBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	updates := body.updates()
	if len(updates) == 0 {
		writeError(w, "Nothing to update", http.StatusBadRequest)
		return
	}

	role, err := database.UpdateRole(r.Context(), id, updates)
	if err != nil {
		writeMasterError(w, "role", id, err)
		return
	}
	writeJSON(w, http.StatusOK, role)
}

func deleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := database.DeactivateRole(r.Context(), id); err != nil {
		writeMasterError(w, "role", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := database.ListCategories(r.Context())
	if err != nil {
		log.Error("Could not load categories", "error", err.Error())
		writeError(w, "Could not load categories", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func createCategory(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body masterBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == nil || *body.Name == "" {
		writeError(w, "Name is required", http.StatusBadRequest)
		return
	}

	category := domain.Category{Name: *body.Name, IsActive: true, CreatedBy: &userID}
	if err := database.CreateCategory(r.Context(), &category); err != nil {
		log.Error("Could not create category", "error", err.Error())
		writeError(w, "Could not create category", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func updateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	var body masterBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	updates := body.updates()
	if len(updates) == 0 {
		writeError(w, "Nothing to update", http.StatusBadRequest)
		return
	}

	category, err := database.UpdateCategory(r.Context(), id, updates)
	if err != nil {
		writeMasterError(w, "category", id, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := database.DeactivateCategory(r.Context(), id); err != nil {
		writeMasterError(w, "category", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func getFields(w http.ResponseWriter, r *http.Request) {
	var categoryID uint
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			writeError(w, "Invalid categoryId", http.StatusBadRequest)
			return
		}
		categoryID = uint(parsed)
	}

	fields, err := database.ListFields(r.Context(), categoryID)
	if err != nil {
		log.Error("Could not load fields", "error", err.Error())
		writeError(w, "Could not load fields", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, fields)
}

func createField(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var field domain.Field
	if err := json.NewDecoder(r.Body).Decode(&field); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if field.Name == "" || field.CategoryID == 0 {
		writeError(w, "Name and categoryId are required", http.StatusBadRequest)
		return
	}
	if !field.FieldType.Valid() {
		writeError(w, "Invalid field type", http.StatusBadRequest)
		return
	}

	field.IsActive = true
	field.IsArchived = false
	field.CreatedBy = &userID
	if err := database.CreateField(r.Context(), &field); err != nil {
		log.Error("Could not create field", "error", err.Error())
		writeError(w, "Could not create field", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, field)
}

func updateField(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	var body struct {
		masterBody
		FieldType   *string `json:"fieldType"`
		IsRequired  *bool   `json:"isRequired"`
		ColumnWidth *int    `json:"columnWidth"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updates := body.updates()
	if body.FieldType != nil {
		if !domain.FieldType(*body.FieldType).Valid() {
			writeError(w, "Invalid field type", http.StatusBadRequest)
			return
		}
		updates["field_type"] = *body.FieldType
	}
	if body.IsRequired != nil {
		updates["is_required"] = *body.IsRequired
	}
	if body.ColumnWidth != nil {
		updates["column_width"] = *body.ColumnWidth
	}
	if len(updates) == 0 {
		writeError(w, "Nothing to update", http.StatusBadRequest)
		return
	}

	field, err := database.UpdateField(r.Context(), id, updates)
	if err != nil {
		writeMasterError(w, "field", id, err)
		return
	}
	writeJSON(w, http.StatusOK, field)
}

func archiveField(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := database.ArchiveField(r.Context(), id); err != nil {
		writeMasterError(w, "field", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeMasterError(w http.ResponseWriter, kind string, id uint, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, "Not found", http.StatusNotFound)
		return
	}
	log.Error("Could not update "+kind, "id", id, "error", err.Error())
	writeError(w, "Could not update "+kind, http.StatusInternalServerError)
}
