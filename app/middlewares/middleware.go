package middlewares

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Rakhulsr/go-edumarket/app/helpers"
	"github.com/unrolled/render"
)

// UserIDHeader carries the caller identity, already authenticated upstream.
const UserIDHeader = "X-User-ID"

func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID := strings.TrimSpace(r.Header.Get(UserIDHeader)); userID != "" {
			r = r.WithContext(helpers.WithUserID(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}

func RequireUserMiddleware(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := helpers.UserIDFromContext(r.Context()); !ok {
				log.Printf("RequireUserMiddleware: missing %s on %s %s", UserIDHeader, r.Method, r.URL.Path)
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
