package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cbodonnell/wayfarer/pkg/api/middleware"
	"github.com/cbodonnell/wayfarer/pkg/game"
	"github.com/cbodonnell/wayfarer/pkg/game/types"
	"github.com/cbodonnell/wayfarer/pkg/log"
	"github.com/cbodonnell/wayfarer/pkg/state"
	"github.com/gorilla/mux"
)

// GameResponse is the game data of the player plus the derived values
type GameResponse struct {
	*types.GameData
	GameStarted    bool `json:"gameStarted"`
	IsPlayerMoving bool `json:"isPlayerMoving"`
	InventoryCount int  `json:"inventoryCount"`
	IsGameOver     bool `json:"isGameOver"`
}

func NewGameResponse(store *game.Store) *GameResponse {
	return &GameResponse{
		GameData:       store.Snapshot(),
		GameStarted:    store.GameStarted(),
		IsPlayerMoving: store.IsPlayerMoving(),
		InventoryCount: store.InventoryCount(),
		IsGameOver:     store.IsGameOver(),
	}
}

type RemoveFromInventoryResponse struct {
	InventoryCount int `json:"inventoryCount"`
}

type AdjustSanityRequestBody struct {
	Amount int `json:"amount"`
}

type StoryFlagRequestBody struct {
	Value bool `json:"value"`
}

type MoveRequestBody struct {
	Direction types.Direction `json:"direction"`
	// X and Y teleport the player when both are set
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
	// Speed updates the step size when set
	Speed *float64 `json:"speed,omitempty"`
}

type ChangeMapRequestBody struct {
	Name string `json:"name"`
}

func storeFromRequest(w http.ResponseWriter, r *http.Request) (*game.Store, bool) {
	store, ok := middleware.StoreFromContext(r.Context())
	if !ok {
		log.Error("failed to get store from context")
		http.Error(w, "Failed to get store from context", http.StatusInternalServerError)
		return nil, false
	}
	return store, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeGame(w http.ResponseWriter, store *game.Store) {
	writeJSON(w, NewGameResponse(store))
}

func HandleGetGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFromRequest(w, r)
		if !ok {
			return
		}
		writeGame(w, store)
	}
}

func HandleSaveGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFromRequest(w, r)
		if !ok {
			return
		}
		if err := store.SaveGameData(r.Context()); err != nil {
			http.Error(w, "Failed to save game data", http.StatusInternalServerError)
			return
		}
		writeGame(w, store)
	}
}

func HandleLoadGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFromRequest(w, r)
		if !ok {
			return
		}
		if err := store.LoadGameData(r.Context()); err != nil {
			http.Error(w, "Failed to load game data", http.StatusInternalServerError)
			return
		}
		writeGame(w, store)
	}
}

func HandleStartGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFromRequest(w, r)
		if !ok {
			return
		}
		store.StartGame(r.Context())
		writeGame(w, store)
	}
}

func HandleLogout(sessions state.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFromRequest(w, r)
		if !ok {
			return
		}
		sessions.Logout(r.Context(), store.UserID())
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func HandleAddToInventory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFromRequest(w, r)
		if !ok {
			return
		}
		item := types.InventoryItem{}
		if !decodeBody(w, r, &item) {
			return
		}
		if item.ID == "" {
			http.Error(w, "Missing item id", http.StatusBadRequest)
			return
		}
		if item.Quantity < 0 {
			http.Error(w, "Quantity must not be negative", http.StatusBadRequest)
			return
		}
		store.AddToInventory(r.Context(), item)
		writeGame(w, store)
	}
}

func HandleRemoveFromInventory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFromRequest(w, r)
		if !ok {
			return
		}
		itemID := mux.Vars(r)["itemID"]

		quantity := 1
		if q := r.URL.Query().Get("quantity"); q != "" {
			parsed, err := strconv.Atoi(q)
			if err != nil || parsed < 1 {
				http.Error(w, "Quantity must be a positive integer", http.StatusBadRequest)
				return
			}
			quantity = parsed
		}

		store.RemoveFromInventory(r.Context(), itemID, quantity)
		writeGame(w, store)
	}
}

func HandleAdjustSanity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFromRequest(w, r)
		if !ok {
			return
		}
		body := AdjustSanityRequestBody{}
		if !decodeBody(w, r, &body) {
			return
		}
		store.AdjustSanity(r.Context(), body.Amount)
		writeGame(w, store)
	}
}

func HandleGetStoryFlag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFromRequest(w, r)
		if !ok {
			return
		}
		flagID := mux.Vars(r)["flagID"]
		writeJSON(w, types.StoryFlag{ID: flagID, Value: store.GetStoryFlag(flagID)})
	}
}

func HandleSetStoryFlag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFromRequest(w, r)
		if !ok {
			return
		}
		flagID := mux.Vars(r)["flagID"]
		body := StoryFlagRequestBody{}
		if !decodeBody(w, r, &body) {
			return
		}
		store.SetStoryFlag(r.Context(), flagID, body.Value)
		writeJSON(w, types.StoryFlag{ID: flagID, Value: store.GetStoryFlag(flagID)})
	}
}

func HandleMove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFromRequest(w, r)
		if !ok {
			return
		}
		body := MoveRequestBody{}
		if !decodeBody(w, r, &body) {
			return
		}

		if body.Speed != nil {
			if err := store.SetSpeed(r.Context(), *body.Speed); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		if body.X != nil && body.Y != nil {
			store.SetPosition(r.Context(), *body.X, *body.Y)
		}
		if body.Direction != "" {
			if err := store.MovePlayer(r.Context(), body.Direction); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		writeGame(w, store)
	}
}

func HandleChangeMap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFromRequest(w, r)
		if !ok {
			return
		}
		body := ChangeMapRequestBody{}
		if !decodeBody(w, r, &body) {
			return
		}
		if body.Name == "" {
			http.Error(w, "Missing map name", http.StatusBadRequest)
			return
		}

		if err := store.ChangeMap(r.Context(), body.Name); err != nil {
			switch {
			case errors.Is(err, game.ErrMapNotFound):
				http.Error(w, "Map not found", http.StatusNotFound)
			case errors.Is(err, game.ErrMapLocked):
				http.Error(w, "Map is not accessible", http.StatusForbidden)
			default:
				log.Error("failed to change map: %v", err)
				http.Error(w, "Failed to change map", http.StatusInternalServerError)
			}
			return
		}
		writeGame(w, store)
	}
}
