package gateway

import (
	"net/http"
	"strings"

	"github.com/samber/lo"

	"github.com/AlexandreFerreir/BD-Project/internal/gateway/middleware"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/auth/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/utils"
)

// Router registers routes by access level. Every pattern carries its method,
// which lets "PUT /{song_id}" live next to the fixed paths.
type Router struct {
	mux  *http.ServeMux
	auth *middleware.AuthMiddleWare
}

func NewRouter(auth *middleware.AuthMiddleWare) *Router {
	return &Router{
		mux:  http.NewServeMux(),
		auth: auth,
	}
}

// Mux returns the underlying http.ServeMux
func (r *Router) Mux() *http.ServeMux {
	return r.mux
}

// Public registers a route open to anonymous callers
func (r *Router) Public(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// Optional runs handler anonymously when no Authorization header is sent and
// requires a valid token when one is
func (r *Router) Optional(pattern string, handler http.HandlerFunc) {
	r.mux.Handle(pattern, r.auth.FlexibleAuth(handler))
}

// Protected requires a valid token and, when roles are given, one of them
func (r *Router) Protected(pattern string, handler http.HandlerFunc, roles ...domain.Role) {
	names := lo.Map(roles, func(role domain.Role, _ int) string { return string(role) })
	r.mux.Handle(pattern, r.auth.Protect(handler, names...))
}

// Handler serves the registered routes. Requests no pattern matches get the
// mux's 404 or 405 status in the JSON error envelope.
func (r *Router) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		h, pattern := r.mux.Handler(req)
		if pattern != "" {
			r.mux.ServeHTTP(w, req)
			return
		}

		rec := &statusRecorder{header: http.Header{}}
		h.ServeHTTP(rec, req)
		if allow := rec.header.Get("Allow"); allow != "" {
			w.Header().Set("Allow", allow)
		}
		utils.WriteError(w, rec.status, strings.ToLower(http.StatusText(rec.status)))
	})
}

// statusRecorder keeps the status and headers of the mux's fallback
// handlers and drops their plain-text body
type statusRecorder struct {
	header http.Header
	status int
}

func (s *statusRecorder) Header() http.Header { return s.header }

func (s *statusRecorder) WriteHeader(status int) {
	if s.status == 0 {
		s.status = status
	}
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return len(b), nil
}
