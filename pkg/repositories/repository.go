package repositories

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"

	gametypes "github.com/cbodonnell/wayfarer/pkg/game/types"
)

//go:embed migrations
var migrationsFS embed.FS

// Repository is the row storage of the game. Every call is a single
// select or upsert with no local caching; concurrent writers of the
// same row overwrite each other.
type Repository interface {
	Close(ctx context.Context) error

	// SaveGameData upserts the game_data row of data.UserID.
	SaveGameData(ctx context.Context, data *gametypes.GameData) error
	// LoadGameData selects the single game_data row of userID.
	// It returns *ErrNotFound when the user has never saved.
	LoadGameData(ctx context.Context, userID string) (*gametypes.GameData, error)
	DeleteGameData(ctx context.Context, userID string) error

	SaveUserEmail(ctx context.Context, userID string, email string) error
	// GetUserIDByEmail returns *ErrNotFound when no user has the email.
	GetUserIDByEmail(ctx context.Context, email string) (string, error)

	SaveMap(ctx context.Context, m *gametypes.MapInfo) error
	// GetMap returns *ErrNotFound when the map has no row.
	GetMap(ctx context.Context, name string) (*gametypes.MapInfo, error)
	ListMaps(ctx context.Context) ([]*gametypes.MapInfo, error)
}

// embeddedMigrations returns the bundled schema files for dialect in name order.
func embeddedMigrations(dialect string) ([]string, error) {
	dir := "migrations/" + dialect
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	migrations := make([]string, 0, len(names))
	for _, name := range names {
		b, err := fs.ReadFile(migrationsFS, dir+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %v", name, err)
		}
		migrations = append(migrations, string(b))
	}
	return migrations, nil
}

// gameDataColumns holds the JSON encoded columns of a game_data row
type gameDataColumns struct {
	player     []byte
	inventory  []byte
	storyFlags []byte
}

func encodeGameData(data *gametypes.GameData) (*gameDataColumns, error) {
	player, err := json.Marshal(data.Player)
	if err != nil {
		return nil, fmt.Errorf("failed to encode player: %v", err)
	}
	inventory := data.Inventory
	if inventory == nil {
		inventory = []gametypes.InventoryItem{}
	}
	inventoryBytes, err := json.Marshal(inventory)
	if err != nil {
		return nil, fmt.Errorf("failed to encode inventory: %v", err)
	}
	flags := data.StoryFlags
	if flags == nil {
		flags = []gametypes.StoryFlag{}
	}
	flagBytes, err := json.Marshal(flags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode story flags: %v", err)
	}
	return &gameDataColumns{
		player:     player,
		inventory:  inventoryBytes,
		storyFlags: flagBytes,
	}, nil
}

func decodeGameData(data *gametypes.GameData, cols *gameDataColumns) error {
	if err := json.Unmarshal(cols.player, &data.Player); err != nil {
		return fmt.Errorf("failed to decode player: %v", err)
	}
	data.Inventory = []gametypes.InventoryItem{}
	if err := json.Unmarshal(cols.inventory, &data.Inventory); err != nil {
		return fmt.Errorf("failed to decode inventory: %v", err)
	}
	data.StoryFlags = []gametypes.StoryFlag{}
	if err := json.Unmarshal(cols.storyFlags, &data.StoryFlags); err != nil {
		return fmt.Errorf("failed to decode story flags: %v", err)
	}
	return nil
}

func encodeItems(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode map items: %v", err)
	}
	return b, nil
}

func decodeItems(b []byte) ([]string, error) {
	items := []string{}
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("failed to decode map items: %v", err)
	}
	return items, nil
}
