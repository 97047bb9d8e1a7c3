package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"heron/internal/auth"
	"heron/internal/database"
	"heron/internal/domain"
	"heron/internal/ipgate"
)

func getIPRestrictions(w http.ResponseWriter, r *http.Request) {
	rules, err := database.ListIPRestrictions(r.Context())
	if err != nil {
		log.Error("Could not load ip restrictions", "error", err.Error())
		writeError(w, "Could not load ip restrictions", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rules)
}

func createIPRestriction(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		AddressPattern string  `json:"ipAddress"`
		RuleType       string  `json:"ruleType"`
		Description    *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !ipgate.ValidPattern(body.AddressPattern) {
		writeError(w, "Invalid IPv4 address or CIDR block", http.StatusBadRequest)
		return
	}
	if body.RuleType != domain.IPRuleAllow && body.RuleType != domain.IPRuleDeny {
		writeError(w, "ruleType must be allow or deny", http.StatusBadRequest)
		return
	}

	rule := domain.IPRestriction{
		AddressPattern: body.AddressPattern,
		RuleType:       body.RuleType,
		Description:    body.Description,
		IsActive:       true,
		CreatedBy:      &userID,
	}
	if err := database.CreateIPRestriction(r.Context(), &rule); err != nil {
		log.Error("Could not create ip restriction", "error", err.Error())
		writeError(w, "Could not create ip restriction", http.StatusInternalServerError)
		return
	}

	reloadGate(r)
	writeJSON(w, http.StatusCreated, rule)
}

func updateIPRestriction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	var body struct {
		AddressPattern *string `json:"ipAddress"`
		RuleType       *string `json:"ruleType"`
		Description    *string `json:"description"`
		IsActive       *bool   `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updates := map[string]any{}
	if body.AddressPattern != nil {
		if !ipgate.ValidPattern(*body.AddressPattern) {
			writeError(w, "Invalid IPv4 address or CIDR block", http.StatusBadRequest)
			return
		}
		updates["ip_address"] = *body.AddressPattern
	}
	if body.RuleType != nil {
		if *body.RuleType != domain.IPRuleAllow && *body.RuleType != domain.IPRuleDeny {
			writeError(w, "ruleType must be allow or deny", http.StatusBadRequest)
			return
		}
		updates["rule_type"] = *body.RuleType
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}
	if body.IsActive != nil {
		updates["is_active"] = *body.IsActive
	}
	if len(updates) == 0 {
		writeError(w, "Nothing to update", http.StatusBadRequest)
		return
	}

	rule, err := database.UpdateIPRestriction(r.Context(), id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, "Not found", http.StatusNotFound)
			return
		}
		log.Error("Could not update ip restriction", "id", id, "error", err.Error())
		writeError(w, "Could not update ip restriction", http.StatusInternalServerError)
		return
	}

	reloadGate(r)
	writeJSON(w, http.StatusOK, rule)
}

func deleteIPRestriction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	if err := database.DeleteIPRestriction(r.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, "Not found", http.StatusNotFound)
			return
		}
		log.Error("Could not delete ip restriction", "id", id, "error", err.Error())
		writeError(w, "Could not delete ip restriction", http.StatusInternalServerError)
		return
	}

	reloadGate(r)
	w.WriteHeader(http.StatusNoContent)
}

// Rule edits take effect immediately instead of waiting for the refresh timer.
func reloadGate(r *http.Request) {
	if err := ipgate.Refresh(r.Context()); err != nil {
		log.Warn("Could not refresh access gate cache", "error", err.Error())
	}
}
