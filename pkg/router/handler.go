package router

import (
	"encoding/json"
	"net/http"

	"github.com/cbodonnell/wayfarer/pkg/api/middleware"
	"github.com/cbodonnell/wayfarer/pkg/log"
)

// ScreenResponse describes the screen the client should render
type ScreenResponse struct {
	Route    Route  `json:"route"`
	LoggedIn bool   `json:"loggedIn"`
	UserID   string `json:"userId,omitempty"`
}

// HandleScreen guards the requested path and either redirects or answers
// with the screen descriptor
func (r *Router) HandleScreen() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		// a missing token is a logged out player, not an error
		token, _ := middleware.ParseSessionToken(req)

		decision := r.Guard(req.Context(), req.URL.Path, token)
		if !decision.Allowed() {
			http.Redirect(w, req, decision.Redirect, http.StatusFound)
			return
		}

		resp := ScreenResponse{Route: decision.Route}
		if decision.Store != nil {
			resp.UserID = decision.Store.UserID()
			resp.LoggedIn = resp.UserID != ""
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Error("failed to encode screen: %v", err)
			http.Error(w, "Failed to encode screen", http.StatusInternalServerError)
		}
	}
}
