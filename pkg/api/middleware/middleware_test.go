package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSessionToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		cookie    string
		wantToken string
		wantErr   bool
	}{
		{name: "bearer", header: "Bearer abc", wantToken: "abc"},
		{name: "lowercase scheme", header: "bearer abc", wantToken: "abc"},
		{name: "cookie", cookie: "xyz", wantToken: "xyz"},
		{name: "header wins over cookie", header: "Bearer abc", cookie: "xyz", wantToken: "abc"},
		{name: "missing", wantErr: true},
		{name: "basic scheme", header: "Basic abc", wantErr: true},
		{name: "no token", header: "Bearer", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			token, err := ParseSessionToken(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	called := false
	handler := NewCORSMiddleware("https://example.com")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/game", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/game", nil))
	assert.True(t, called)
}

func TestLoggingMiddleware(t *testing.T) {
	handler := NewLoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Context().Value(RequestIDContextKey).(interface{ String() string })
		assert.True(t, ok)
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
