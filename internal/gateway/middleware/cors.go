package middleware

import (
	"net/http"
	"strings"

	"github.com/samber/lo"
)

const (
	corsAllowMethods = "GET, POST, PUT, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization, " + RequestIDHeader
)

// CORSMiddleware answers preflight requests and sets CORS headers for the
// comma separated allowedOrigins, or for any origin when it is "*".
func CORSMiddleware(next http.Handler, allowedOrigins string) http.Handler {
	wildcard := strings.TrimSpace(allowedOrigins) == "*"
	origins := lo.Map(strings.Split(allowedOrigins, ","), func(o string, _ int) string {
		return strings.TrimSpace(o)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		allowed := false
		switch {
		case wildcard:
			allowed = true
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && lo.Contains(origins, origin):
			allowed = true
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}

		if allowed {
			w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
			w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
