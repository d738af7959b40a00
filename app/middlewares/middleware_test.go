package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rakhulsr/go-edumarket/app/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/unrolled/render"
)

func TestIdentityAndRequireUser(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = helpers.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := IdentityMiddleware(RequireUserMiddleware(render.New())(inner))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication required")

	req := httptest.NewRequest(http.MethodPost, "/cart", nil)
	req.Header.Set(UserIDHeader, " u-42 ")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u-42", seen)
}

func TestLoggingMiddlewareKeepsStatus(t *testing.T) {
	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
