package middleware

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cbodonnell/wayfarer/pkg/game"
	"github.com/cbodonnell/wayfarer/pkg/log"
	"github.com/cbodonnell/wayfarer/pkg/state"
	"github.com/google/uuid"
)

type ContextKey int

const (
	// StoreContextKey is the key used to store the user's game store in the request context
	StoreContextKey ContextKey = iota
	// RequestIDContextKey is the key used to store the request id in the request context
	RequestIDContextKey
)

// SessionCookieName is the cookie browsers send the session token in
const SessionCookieName = "session"

// NewAuthMiddleware rejects requests without a valid session and attaches the user's store to the context
func NewAuthMiddleware(sessions state.SessionManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ParseSessionToken(r)
			if err != nil {
				log.Debug("failed to parse session token: %v", err)
				http.Error(w, "failed to parse session token", http.StatusUnauthorized)
				return
			}

			store, err := sessions.FetchUser(r.Context(), token)
			if err != nil {
				log.Debug("failed to fetch user: %v", err)
				http.Error(w, "failed to verify session", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), StoreContextKey, store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StoreFromContext returns the store attached by the auth middleware
func StoreFromContext(ctx context.Context) (*game.Store, bool) {
	store, ok := ctx.Value(StoreContextKey).(*game.Store)
	return store, ok
}

// ParseSessionToken reads the bearer token from the Authorization header,
// falling back to the session cookie
func ParseSessionToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
			return cookie.Value, nil
		}
		return "", fmt.Errorf("authorization header is missing")
	}

	// Check if the Authorization header has the Bearer scheme
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", fmt.Errorf("invalid Authorization header format")
	}

	return parts[1], nil
}

// NewCORSMiddleware answers preflight requests and sets the allowed origin
func NewCORSMiddleware(allowOrigin string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
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

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Hijack hands the connection to websocket upgrades
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

// NewLoggingMiddleware tags each request with an id and logs its outcome
func NewLoggingMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.New()
			start := time.Now()
			w.Header().Set("X-Request-Id", requestID.String())
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			next.ServeHTTP(rec, r.WithContext(ctx))

			log.Debug("%s %s %d %s (request %s)", r.Method, r.URL.Path, rec.status, time.Since(start), requestID)
		})
	}
}
