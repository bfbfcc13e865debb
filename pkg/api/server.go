package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cbodonnell/wayfarer/pkg/api/handlers"
	"github.com/cbodonnell/wayfarer/pkg/api/middleware"
	"github.com/cbodonnell/wayfarer/pkg/log"
	"github.com/cbodonnell/wayfarer/pkg/repositories"
	"github.com/cbodonnell/wayfarer/pkg/resources"
	"github.com/cbodonnell/wayfarer/pkg/router"
	"github.com/cbodonnell/wayfarer/pkg/state"
	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port       int
	TLS        *TLSConfig
	Sessions   state.SessionManager
	Repository repositories.Repository
	Router     *router.Router
	// Preloader is optional
	Preloader   *resources.Preloader
	AllowOrigin string
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewHandler(opts),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// NewHandler builds the handler of the API server
func NewHandler(opts NewAPIServerOptions) http.Handler {
	allowOrigin := opts.AllowOrigin
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	authMiddleware := middleware.NewAuthMiddleware(opts.Sessions)

	r := mux.NewRouter()

	// websockets cannot be hijacked through the gzip writer
	r.Handle("/api/game/ws", authMiddleware(handlers.HandleGameFeed([]string{allowOrigin}))).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(compress)
	api.Handle("/game", authMiddleware(handlers.HandleGetGame())).Methods(http.MethodGet)
	api.HandleFunc("/maps", handlers.HandleListMaps(opts.Repository)).Methods(http.MethodGet)
	api.HandleFunc("/maps/{name}", handlers.HandleGetMap(opts.Repository)).Methods(http.MethodGet)
	api.HandleFunc("/resources", handlers.HandleResources(opts.Preloader)).Methods(http.MethodGet)

	g := api.PathPrefix("/game").Subrouter()
	g.Use(authMiddleware)
	g.HandleFunc("/save", handlers.HandleSaveGame()).Methods(http.MethodPut)
	g.HandleFunc("/load", handlers.HandleLoadGame()).Methods(http.MethodPost)
	g.HandleFunc("/start", handlers.HandleStartGame()).Methods(http.MethodPost)
	g.HandleFunc("/logout", handlers.HandleLogout(opts.Sessions)).Methods(http.MethodPost)
	g.HandleFunc("/inventory", handlers.HandleAddToInventory()).Methods(http.MethodPost)
	g.HandleFunc("/inventory/{itemID}", handlers.HandleRemoveFromInventory()).Methods(http.MethodDelete)
	g.HandleFunc("/sanity", handlers.HandleAdjustSanity()).Methods(http.MethodPost)
	g.HandleFunc("/flags/{flagID}", handlers.HandleGetStoryFlag()).Methods(http.MethodGet)
	g.HandleFunc("/flags/{flagID}", handlers.HandleSetStoryFlag()).Methods(http.MethodPut)
	g.HandleFunc("/move", handlers.HandleMove()).Methods(http.MethodPost)
	g.HandleFunc("/map", handlers.HandleChangeMap()).Methods(http.MethodPost)

	if opts.Router != nil {
		screens := r.NewRoute().Subrouter()
		screens.Use(compress)
		for _, route := range opts.Router.Routes() {
			screens.HandleFunc(route.Path, opts.Router.HandleScreen()).Methods(http.MethodGet)
		}
		// unknown screens resolve to home
		screen := opts.Router.HandleScreen()
		r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if strings.HasPrefix(req.URL.Path, "/api/") {
				http.NotFound(w, req)
				return
			}
			screen(w, req)
		})
	}

	// preflight requests are answered before route matching
	handler := middleware.NewCORSMiddleware(allowOrigin)(r)
	return middleware.NewLoggingMiddleware()(handler)
}

func compress(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
