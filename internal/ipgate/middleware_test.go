package ipgate

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"heron/internal/config"
	"heron/internal/domain"
)

func gateTestHandler(t *testing.T, rules []domain.IPRestriction) http.Handler {
	t.Helper()

	previous := ruleCache.Load()
	ruleCache.Store(rules)
	config.SetProductionMode(true)
	t.Cleanup(func() {
		ruleCache.Store(previous)
		config.SetProductionMode(false)
	})

	return Restrict(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRestrict_BlocksDenylistedClient(t *testing.T) {
	handler := gateTestHandler(t, []domain.IPRestriction{
		{AddressPattern: "10.1.2.3", RuleType: domain.IPRuleDeny, IsActive: true},
	})

	request := httptest.NewRequest(http.MethodGet, "/employees", nil)
	request.RemoteAddr = "10.1.2.3:54211"
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", recorder.Code)
	}
}

func TestRestrict_PrefersForwardedForHeader(t *testing.T) {
	handler := gateTestHandler(t, []domain.IPRestriction{
		{AddressPattern: "203.0.113.0/24", RuleType: domain.IPRuleDeny, IsActive: true},
	})

	request := httptest.NewRequest(http.MethodGet, "/employees", nil)
	request.RemoteAddr = "127.0.0.1:43000"
	request.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for forwarded client, got %d", recorder.Code)
	}
}

func TestRestrict_SkipsEnforcementOutsideProduction(t *testing.T) {
	previous := ruleCache.Load()
	ruleCache.Store([]domain.IPRestriction{
		{AddressPattern: "10.1.2.3", RuleType: domain.IPRuleDeny, IsActive: true},
	})
	config.SetProductionMode(false)
	t.Cleanup(func() { ruleCache.Store(previous) })

	handler := Restrict(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/employees", nil)
	request.RemoteAddr = "10.1.2.3:54211"
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected pass-through in development, got %d", recorder.Code)
	}
}
