package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubAuthHandler struct{}

func (stubAuthHandler) respond(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(name))
	}
}

func (h stubAuthHandler) HandleRegister() http.HandlerFunc {
	return h.respond("register")
}

func (h stubAuthHandler) HandleLogin() http.HandlerFunc {
	return h.respond("login")
}

func (h stubAuthHandler) HandleRefresh() http.HandlerFunc {
	return h.respond("refresh")
}

func (h stubAuthHandler) HandleDelete() http.HandlerFunc {
	return h.respond("delete")
}

func TestNewAuthMux(t *testing.T) {
	mux := NewAuthMux(stubAuthHandler{}, "https://wayfarer.example")

	for _, path := range []string{"register", "login", "refresh", "delete"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/"+path, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, path, rec.Body.String())
		assert.Equal(t, "https://wayfarer.example", rec.Header().Get("Access-Control-Allow-Origin"))
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/login", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
