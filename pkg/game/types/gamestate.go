package types

import (
	"time"

	"github.com/cbodonnell/wayfarer/pkg/game/constants"
)

type InventoryItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsKeyItem   bool   `json:"isKeyItem"`
	// Quantity is zero for items that do not stack
	Quantity int `json:"quantity,omitempty"`
}

type StoryFlag struct {
	ID    string `json:"id"`
	Value bool   `json:"value"`
}

// GameData is the persisted game_data row of a single user
type GameData struct {
	UserID     string          `json:"user_id"`
	Player     Player          `json:"player"`
	Inventory  []InventoryItem `json:"inventory"`
	Sanity     int             `json:"sanity"`
	StoryFlags []StoryFlag     `json:"story_flags"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewGameData returns the data of a user who has never saved
func NewGameData(userID string) *GameData {
	return &GameData{
		UserID:     userID,
		Player:     NewPlayer(),
		Inventory:  []InventoryItem{},
		Sanity:     constants.MaxSanity,
		StoryFlags: []StoryFlag{},
	}
}

// Copy returns a deep copy of the game data
func (g *GameData) Copy() *GameData {
	inventory := make([]InventoryItem, len(g.Inventory))
	copy(inventory, g.Inventory)
	flags := make([]StoryFlag, len(g.StoryFlags))
	copy(flags, g.StoryFlags)
	return &GameData{
		UserID:     g.UserID,
		Player:     g.Player,
		Inventory:  inventory,
		Sanity:     g.Sanity,
		StoryFlags: flags,
		UpdatedAt:  g.UpdatedAt,
	}
}

// MapInfo is the maps row describing whether a map can be entered and what lies on it
type MapInfo struct {
	Name       string   `json:"name"`
	Accessible bool     `json:"accessible"`
	Items      []string `json:"items"`
}

type UserEmail struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
