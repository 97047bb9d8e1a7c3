package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"heron/internal/api/dto"
	"heron/internal/auth"
	"heron/internal/database"
	"heron/internal/domain"
	"heron/internal/geolite"
	"heron/internal/ipgate"
	"heron/internal/support"
)

func checkLogin(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func registerUser(w http.ResponseWriter, r *http.Request) {
	var credentials dto.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	user := domain.User{
		Email:    credentials.Email,
		Name:     credentials.Name,
		Password: credentials.Password,
		IsActive: true,
	}

	if !auth.IsValidEmail(user.Email) {
		writeError(w, "Invalid email format", http.StatusBadRequest)
		return
	}

	if len(user.Password) < 8 {
		writeError(w, "Password must be at least 8 characters long", http.StatusBadRequest)
		return
	}

	hashedPassword, err := support.HashPassword(user.Password)
	if err != nil {
		writeError(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}
	user.Password = hashedPassword

	var existingUser domain.User
	if err = database.DB.Where("email = ?", user.Email).First(&existingUser).Error; err == nil {
		writeError(w, "Email already in use", http.StatusConflict)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, "Failed to query database", http.StatusInternalServerError)
		return
	}

	// The first account becomes the admin.
	if err = database.DB.Select("id").Take(&existingUser).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		user.Role = "admin"
	} else {
		user.Role = "user"
	}

	if err = database.CreateUser(r.Context(), &user); err != nil {
		writeError(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Role)
	if err != nil {
		writeError(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

func loginUser(w http.ResponseWriter, r *http.Request) {
	var credentials dto.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	user, err := database.GetUserByEmail(r.Context(), credentials.Email)
	if err != nil {
		writeError(w, "User not found", http.StatusUnauthorized)
		return
	}

	if !user.IsActive {
		writeError(w, "Account is deactivated", http.StatusForbidden)
		return
	}

	if !support.CheckPasswordHash(credentials.Password, user.Password) {
		writeError(w, "Invalid password", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Role)
	if err != nil {
		writeError(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	if err := database.TouchLastLogin(r.Context(), user.ID, now); err != nil {
		log.Warn("Could not update last login", "user", user.ID, "error", err.Error())
	}

	clientAddr := ipgate.ClientAddr(r)
	record := domain.LoginRecord{
		UserID:    user.ID,
		IPAddress: clientAddr,
		Country:   geolite.CountryCode(clientAddr),
		UserAgent: r.UserAgent(),
	}
	if err := database.InsertLoginRecord(r.Context(), &record); err != nil {
		log.Warn("Could not store login record", "user", user.ID, "error", err.Error())
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token, "role": user.Role})
}

func changePassword(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body dto.PasswordChange
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if len(body.NewPassword) < 8 {
		writeError(w, "Password must be at least 8 characters long", http.StatusBadRequest)
		return
	}

	user := database.GetUserFromId(userID)
	if user.ID == 0 {
		writeError(w, "User not found", http.StatusNotFound)
		return
	}

	if !support.CheckPasswordHash(body.CurrentPassword, user.Password) {
		writeError(w, "Invalid password", http.StatusUnauthorized)
		return
	}

	hashedPassword, err := support.HashPassword(body.NewPassword)
	if err != nil {
		writeError(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	if err := database.UpdateUserPassword(r.Context(), userID, hashedPassword); err != nil {
		log.Error("Could not update password", "user", userID, "error", err.Error())
		writeError(w, "Could not update password", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := database.ListUsers(r.Context())
	if err != nil {
		log.Error("Could not load users", "error", err.Error())
		writeError(w, "Could not load users", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func createUser(w http.ResponseWriter, r *http.Request) {
	adminID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		dto.Credentials
		Role          string `json:"role"`
		PermissionIDs []uint `json:"permissionIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if !auth.IsValidEmail(body.Email) {
		writeError(w, "Invalid email format", http.StatusBadRequest)
		return
	}
	if len(body.Password) < 8 {
		writeError(w, "Password must be at least 8 characters long", http.StatusBadRequest)
		return
	}
	if body.Role != "admin" {
		body.Role = "user"
	}

	hashedPassword, err := support.HashPassword(body.Password)
	if err != nil {
		writeError(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	user := domain.User{
		Email:    body.Email,
		Name:     body.Name,
		Password: hashedPassword,
		Role:     body.Role,
		IsActive: true,
	}

	if err := database.CreateUser(r.Context(), &user); err != nil {
		log.Error("Could not create user", "error", err.Error())
		writeError(w, "Could not create user", http.StatusInternalServerError)
		return
	}

	if len(body.PermissionIDs) > 0 {
		if err := database.AssignPermissions(r.Context(), user.ID, body.PermissionIDs, adminID); err != nil {
			log.Error("Could not assign permissions", "user", user.ID, "error", err.Error())
			writeError(w, "Could not assign permissions", http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, http.StatusCreated, user)
}

func getPermissions(w http.ResponseWriter, r *http.Request) {
	permissions, err := database.ListPermissions(r.Context())
	if err != nil {
		log.Error("Could not load permissions", "error", err.Error())
		writeError(w, "Could not load permissions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, permissions)
}

func getUserSettings(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	settings, err := database.GetUserSettings(r.Context(), userID)
	if err != nil {
		log.Error("Could not load user settings", "user", userID, "error", err.Error())
		writeError(w, "Could not load settings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

func saveUserSettings(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Settings json.RawMessage `json:"settings"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !json.Valid(body.Settings) {
		writeError(w, "Settings must be valid JSON", http.StatusBadRequest)
		return
	}

	settings, err := database.UpsertUserSettings(r.Context(), userID, string(body.Settings))
	if err != nil {
		log.Error("Could not save user settings", "user", userID, "error", err.Error())
		writeError(w, "Could not save settings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
