package router

import (
	"context"
	"net/url"

	"github.com/cbodonnell/wayfarer/pkg/game"
	"github.com/cbodonnell/wayfarer/pkg/log"
	"github.com/cbodonnell/wayfarer/pkg/state"
)

const (
	RouteHome  = "home"
	RouteAbout = "about"
	RouteGame  = "game"
)

// Route is a screen of the client
type Route struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Screen string `json:"screen"`
	// RequiresAuth routes send logged out players to home
	RequiresAuth bool `json:"requiresAuth"`
	// GuestOnly routes send logged in players to the game
	GuestOnly bool `json:"guestOnly"`
}

// DefaultRoutes are the screens of the game
func DefaultRoutes() []Route {
	return []Route{
		{Name: RouteHome, Path: "/", Screen: "Terminal", GuestOnly: true},
		{Name: RouteAbout, Path: "/about", Screen: "MainPage"},
		{Name: RouteGame, Path: "/game", Screen: "GameUI", RequiresAuth: true},
	}
}

// Decision is the outcome of a navigation
type Decision struct {
	// Route is the resolved target, set even when redirecting
	Route Route `json:"route"`
	// Redirect is the location to navigate to instead, empty when allowed
	Redirect string `json:"redirect,omitempty"`
	// Store is the session of the player, nil when logged out
	Store *game.Store `json:"-"`
}

func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

type Router struct {
	routes   []Route
	sessions state.SessionManager
}

type NewRouterOptions struct {
	// Routes defaults to DefaultRoutes
	Routes   []Route
	Sessions state.SessionManager
}

func NewRouter(opts NewRouterOptions) *Router {
	routes := opts.Routes
	if len(routes) == 0 {
		routes = DefaultRoutes()
	}
	return &Router{
		routes:   routes,
		sessions: opts.Sessions,
	}
}

func (r *Router) Routes() []Route {
	routes := make([]Route, len(r.routes))
	copy(routes, r.routes)
	return routes
}

// Resolve finds the route for path, falling back to home
func (r *Router) Resolve(path string) Route {
	for _, route := range r.routes {
		if route.Path == path {
			return route
		}
	}
	home, _ := r.byName(RouteHome)
	return home
}

func (r *Router) byName(name string) (Route, bool) {
	for _, route := range r.routes {
		if route.Name == name {
			return route, true
		}
	}
	return Route{Name: name, Path: "/"}, false
}

// Guard decides whether navigating to path is allowed for the session token.
// The session is fetched before any rule is checked.
func (r *Router) Guard(ctx context.Context, path string, token string) Decision {
	route := r.Resolve(path)

	var store *game.Store
	if token != "" && r.sessions != nil {
		s, err := r.sessions.FetchUser(ctx, token)
		if err != nil {
			log.Debug("Navigating to %s without a session: %v", route.Path, err)
		} else {
			store = s
		}
	}
	loggedIn := store != nil && store.UserID() != ""

	decision := Decision{Route: route, Store: store}
	switch {
	case route.RequiresAuth && !loggedIn:
		home, _ := r.byName(RouteHome)
		decision.Redirect = home.Path + "?" + url.Values{"redirect": {route.Path}}.Encode()
	case route.GuestOnly && loggedIn:
		gameRoute, _ := r.byName(RouteGame)
		decision.Redirect = gameRoute.Path
	}
	return decision
}
