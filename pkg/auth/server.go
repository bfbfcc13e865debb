package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/wayfarer/pkg/auth/handlers"
	"github.com/cbodonnell/wayfarer/pkg/log"
)

type AuthServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAuthServerOptions struct {
	Port        int
	Handler     handlers.AuthHandler
	AllowOrigin string
	TLS         *TLSConfig
}

// NewAuthServer creates a new http.Server for handling authentication requests
func NewAuthServer(opts NewAuthServerOptions) *AuthServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewAuthMux(opts.Handler, opts.AllowOrigin),
	}
	return &AuthServer{
		server: server,
		tls:    opts.TLS,
	}
}

// NewAuthMux routes the auth endpoints to handler
func NewAuthMux(handler handlers.AuthHandler, allowOrigin string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", handler.HandleRegister())
	mux.HandleFunc("POST /login", handler.HandleLogin())
	mux.HandleFunc("POST /refresh", handler.HandleRefresh())
	mux.HandleFunc("POST /delete", handler.HandleDelete())
	if allowOrigin == "" {
		return mux
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// Start starts the AuthServer
func (s *AuthServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("Auth server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("Auth server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("Auth server closed")
			return
		}
		log.Error("Auth server error: %v", err)
	}
}

// Stop stops the AuthServer
func (s *AuthServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
