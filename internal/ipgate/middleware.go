package ipgate

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"heron/internal/config"
)

// Restrict blocks requests whose source address fails the access gate.
// Enforcement is limited to production mode; local development runs open.
func Restrict(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !config.InProductionMode {
			next.ServeHTTP(w, r)
			return
		}

		clientAddr := ClientAddr(r)
		decision := Check(clientAddr)
		if !decision.Permitted {
			log.Warn("Request blocked by IP restriction", "client", clientAddr, "reason", decision.Reason)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": decision.Reason})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ClientAddr extracts the requester's address, preferring the first hop of
// X-Forwarded-For when the service sits behind a proxy.
func ClientAddr(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
