package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cbodonnell/wayfarer/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	stores map[string]*game.Store
	calls  int
}

func (f *fakeSessions) FetchUser(ctx context.Context, token string) (*game.Store, error) {
	f.calls++
	store, ok := f.stores[token]
	if !ok {
		return nil, game.ErrNotLoggedIn
	}
	return store, nil
}

func (f *fakeSessions) Get(userID string) (*game.Store, bool) {
	for _, store := range f.stores {
		if store.UserID() == userID {
			return store, true
		}
	}
	return nil, false
}

func (f *fakeSessions) Logout(ctx context.Context, userID string) {}

func newTestRouter() (*Router, *fakeSessions) {
	store := game.NewStore(game.NewStoreOptions{})
	store.SetUserID("user-1")
	sessions := &fakeSessions{stores: map[string]*game.Store{"valid": store}}
	return NewRouter(NewRouterOptions{Sessions: sessions}), sessions
}

func TestRouter_Resolve(t *testing.T) {
	r, _ := newTestRouter()

	assert.Equal(t, RouteHome, r.Resolve("/").Name)
	assert.Equal(t, RouteAbout, r.Resolve("/about").Name)
	assert.Equal(t, RouteGame, r.Resolve("/game").Name)
	assert.Equal(t, RouteHome, r.Resolve("/nowhere").Name)
}

func TestRouter_Guard(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		token        string
		wantRoute    string
		wantRedirect string
	}{
		{
			name:         "game requires a session",
			path:         "/game",
			wantRoute:    RouteGame,
			wantRedirect: "/?redirect=%2Fgame",
		},
		{
			name:         "game with invalid session",
			path:         "/game",
			token:        "expired",
			wantRoute:    RouteGame,
			wantRedirect: "/?redirect=%2Fgame",
		},
		{
			name:      "game with session",
			path:      "/game",
			token:     "valid",
			wantRoute: RouteGame,
		},
		{
			name:      "home as guest",
			path:      "/",
			wantRoute: RouteHome,
		},
		{
			name:         "home with session goes to game",
			path:         "/",
			token:        "valid",
			wantRoute:    RouteHome,
			wantRedirect: "/game",
		},
		{
			name:      "about is public",
			path:      "/about",
			wantRoute: RouteAbout,
		},
		{
			name:      "about with session",
			path:      "/about",
			token:     "valid",
			wantRoute: RouteAbout,
		},
		{
			name:      "unknown path resolves to home",
			path:      "/missing",
			wantRoute: RouteHome,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRouter()
			decision := r.Guard(context.Background(), tt.path, tt.token)
			assert.Equal(t, tt.wantRoute, decision.Route.Name)
			assert.Equal(t, tt.wantRedirect, decision.Redirect)
			assert.Equal(t, tt.wantRedirect == "", decision.Allowed())
		})
	}
}

func TestRouter_GuardSkipsLookupWithoutToken(t *testing.T) {
	r, sessions := newTestRouter()
	r.Guard(context.Background(), "/game", "")
	assert.Equal(t, 0, sessions.calls)
}

func TestRouter_HandleScreen(t *testing.T) {
	r, _ := newTestRouter()

	t.Run("redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/game", nil)
		rec := httptest.NewRecorder()
		r.HandleScreen()(rec, req)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/?redirect=%2Fgame", rec.Header().Get("Location"))
	})

	t.Run("bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/game", nil)
		req.Header.Set("Authorization", "Bearer valid")
		rec := httptest.NewRecorder()
		r.HandleScreen()(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := &ScreenResponse{}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(resp))
		assert.Equal(t, "GameUI", resp.Route.Screen)
		assert.True(t, resp.LoggedIn)
		assert.Equal(t, "user-1", resp.UserID)
	})

	t.Run("session cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: "valid"})
		rec := httptest.NewRecorder()
		r.HandleScreen()(rec, req)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/game", rec.Header().Get("Location"))
	})
}
