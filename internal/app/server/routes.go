package server

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/charmbracelet/log"
	"golang.org/x/net/netutil"

	"heron/internal/auth"
	"heron/internal/ipgate"
	"heron/internal/support"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func OpenRoutes(port int) error {
	router := http.NewServeMux()

	router.HandleFunc("POST /register", registerUser)
	router.HandleFunc("POST /login", loginUser)
	router.Handle("GET /checkLogin", auth.RequireAuth(http.HandlerFunc(checkLogin)))
	router.Handle("POST /changePassword", auth.RequireAuth(http.HandlerFunc(changePassword)))

	router.Handle("GET /getDashboardInfo", auth.RequireAuth(http.HandlerFunc(getDashboardInfo)))

	router.Handle("GET /employees", auth.RequireAuth(http.HandlerFunc(getEmployeePage)))
	router.Handle("POST /employees", auth.RequireAuth(http.HandlerFunc(createEmployee)))
	router.Handle("GET /employees/export", auth.RequireAuth(http.HandlerFunc(exportEmployees)))
	router.Handle("POST /employees/import", auth.RequireAuth(http.HandlerFunc(importEmployees)))
	router.Handle("GET /employees/{id}", auth.RequireAuth(http.HandlerFunc(getEmployeeDetail)))
	router.Handle("GET /employees/{id}/history", auth.RequireAuth(http.HandlerFunc(getEmployeeChangeHistory)))
	router.Handle("PATCH /employees/{id}", auth.RequireAuth(http.HandlerFunc(patchEmployee)))
	router.Handle("DELETE /employees/{id}", auth.RequireAuth(http.HandlerFunc(deleteEmployee)))

	router.Handle("POST /comments", auth.RequireAuth(http.HandlerFunc(createComment)))

	router.Handle("GET /departments", auth.RequireAuth(http.HandlerFunc(getDepartments)))
	router.Handle("POST /departments", auth.RequireAuth(http.HandlerFunc(createDepartment)))
	router.Handle("PUT /departments/{id}", auth.RequireAuth(http.HandlerFunc(updateDepartment)))
	router.Handle("DELETE /departments/{id}", auth.RequireAuth(http.HandlerFunc(deleteDepartment)))

	router.Handle("GET /roles", auth.RequireAuth(http.HandlerFunc(getRoles)))
	router.Handle("POST /roles", auth.RequireAuth(http.HandlerFunc(createRole)))
	router.Handle("PUT /roles/{id}", auth.RequireAuth(http.HandlerFunc(updateRole)))
	router.Handle("DELETE /roles/{id}", auth.RequireAuth(http.HandlerFunc(deleteRole)))

	router.Handle("GET /settings/categories", auth.RequireAuth(http.HandlerFunc(getCategories)))
	router.Handle("POST /settings/categories", auth.RequireAuth(http.HandlerFunc(createCategory)))
	router.Handle("PUT /settings/categories/{id}", auth.RequireAuth(http.HandlerFunc(updateCategory)))
	router.Handle("DELETE /settings/categories/{id}", auth.RequireAuth(http.HandlerFunc(deleteCategory)))

	router.Handle("GET /settings/fields", auth.RequireAuth(http.HandlerFunc(getFields)))
	router.Handle("POST /settings/fields", auth.RequireAuth(http.HandlerFunc(createField)))
	router.Handle("PUT /settings/fields/{id}", auth.RequireAuth(http.HandlerFunc(updateField)))
	router.Handle("DELETE /settings/fields/{id}", auth.RequireAuth(http.HandlerFunc(archiveField)))

	router.Handle("GET /user/settings", auth.RequireAuth(http.HandlerFunc(getUserSettings)))
	router.Handle("POST /user/settings", auth.RequireAuth(http.HandlerFunc(saveUserSettings)))

	router.Handle("GET /users", auth.IsAdmin(http.HandlerFunc(getUsers)))
	router.Handle("POST /users", auth.IsAdmin(http.HandlerFunc(createUser)))
	router.Handle("GET /permissions", auth.IsAdmin(http.HandlerFunc(getPermissions)))

	router.Handle("GET /ipRestrictions", auth.IsAdmin(http.HandlerFunc(getIPRestrictions)))
	router.Handle("POST /ipRestrictions", auth.IsAdmin(http.HandlerFunc(createIPRestriction)))
	router.Handle("PUT /ipRestrictions/{id}", auth.IsAdmin(http.HandlerFunc(updateIPRestriction)))
	router.Handle("DELETE /ipRestrictions/{id}", auth.IsAdmin(http.HandlerFunc(deleteIPRestriction)))

	router.Handle("GET /global/settings", auth.IsAdmin(http.HandlerFunc(getGlobalSettings)))
	router.Handle("POST /global/settings", auth.IsAdmin(http.HandlerFunc(saveGlobalSettings)))

	log.Debug("Routes opened")

	server := http.Server{
		Handler: enableCORS(ipgate.Restrict(router)),
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("api listener failed: %w", err)
	}

	maxConns := support.GetEnvInt("MAX_CONCURRENT_CONNS", 256)
	if maxConns > 0 {
		listener = netutil.LimitListener(listener, maxConns)
	}

	log.Infof("Starting heron backend on port :%d", port)
	if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}
