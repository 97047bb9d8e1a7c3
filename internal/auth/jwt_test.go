package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT(42, "admin")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims["role"] != "admin" {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
	if userID, ok := claims["user_id"].(float64); !ok || uint(userID) != 42 {
		t.Fatalf("unexpected user_id claim: %v", claims["user_id"])
	}
}

func TestValidateJWT_RejectsTampering(t *testing.T) {
	token, err := GenerateJWT(7, "user")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ValidateJWT(token + "x"); err == nil {
		t.Fatal("tampered token must not validate")
	}
}

func TestIsAdmin_RejectsNonAdminToken(t *testing.T) {
	token, err := GenerateJWT(7, "user")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	handler := IsAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/users", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", recorder.Code)
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/employees", nil)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", recorder.Code)
	}
}

func TestIsValidEmail(t *testing.T) {
	if !IsValidEmail("hr@example.com") {
		t.Fatal("expected valid email to pass")
	}
	for _, email := range []string{"", "no-at-sign", "a@b", "a@b."} {
		if IsValidEmail(email) {
			t.Fatalf("expected %q to fail validation", email)
		}
	}
}
