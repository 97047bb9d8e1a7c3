package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"heron/internal/config"
	"heron/internal/database"
)

func getDashboardInfo(w http.ResponseWriter, r *http.Request) {
	windowDays := config.GetConfig().Dashboard.UpcomingJoinWindowDays
	if windowDays <= 0 {
		windowDays = 30
	}

	info, err := database.GetDashboardInfo(r.Context(), time.Duration(windowDays)*24*time.Hour)
	if err != nil {
		log.Error("Could not load dashboard info", "error", err.Error())
		writeError(w, "Could not load dashboard info", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func getGlobalSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, config.GetConfig())
}

func saveGlobalSettings(w http.ResponseWriter, r *http.Request) {
	var newConfig config.Config
	if err := json.NewDecoder(r.Body).Decode(&newConfig); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	config.SetConfig(newConfig)
	writeJSON(w, http.StatusOK, config.GetConfig())
}
