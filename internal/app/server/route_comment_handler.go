package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"heron/internal/auth"
	"heron/internal/database"
	"heron/internal/domain"
)

func createComment(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		EmployeeID uint   `json:"employeeId"`
		Content    string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if body.EmployeeID == 0 || body.Content == "" {
		writeError(w, "employeeId and content are required", http.StatusBadRequest)
		return
	}

	comment := domain.Comment{
		EmployeeID: body.EmployeeID,
		Content:    body.Content,
		CreatedBy:  userID,
	}

	if err := database.CreateComment(r.Context(), &comment); err != nil {
		log.Error("Could not create comment", "employee", body.EmployeeID, "error", err.Error())
		writeError(w, "Could not create comment", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}
