package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	gametypes "github.com/cbodonnell/wayfarer/pkg/game/types"
	_ "github.com/mattn/go-sqlite3"
)

var _ Repository = &SQLiteRepository{}

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at path and applies the migrations.
// When migrations is empty the bundled schema is used, otherwise every file
// in the migrations directory is executed in name order.
func NewSQLiteRepository(ctx context.Context, path string, migrations string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// a single connection keeps writes serialized and in-memory databases shared
	db.SetMaxOpenConns(1)

	var statements []string
	if migrations == "" {
		statements, err = embeddedMigrations("sqlite")
	} else {
		statements, err = readMigrations(migrations)
	}
	if err != nil {
		db.Close()
		return nil, err
	}

	for i, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func readMigrations(migrations string) ([]string, error) {
	dir, err := os.ReadDir(migrations)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}
	sort.Slice(dir, func(i, j int) bool { return dir[i].Name() < dir[j].Name() })

	statements := make([]string, 0, len(dir))
	for _, entry := range dir {
		if entry.IsDir() {
			continue
		}
		migrationPath := filepath.Join(migrations, entry.Name())
		migration, err := os.ReadFile(migrationPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}
		statements = append(statements, string(migration))
	}
	return statements, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveGameData(ctx context.Context, data *gametypes.GameData) error {
	cols, err := encodeGameData(data)
	if err != nil {
		return err
	}
	updatedAt := data.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	q := `
	INSERT INTO game_data (user_id, player, inventory, sanity, story_flags, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (user_id) DO UPDATE SET
		player = excluded.player,
		inventory = excluded.inventory,
		sanity = excluded.sanity,
		story_flags = excluded.story_flags,
		updated_at = excluded.updated_at;
	`
	_, err = r.db.ExecContext(ctx, q, data.UserID, string(cols.player), string(cols.inventory), data.Sanity, string(cols.storyFlags), updatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to upsert game data: %v", err)
	}
	return nil
}

func (r *SQLiteRepository) LoadGameData(ctx context.Context, userID string) (*gametypes.GameData, error) {
	q := `
	SELECT player, inventory, sanity, story_flags, updated_at FROM game_data WHERE user_id = ?;
	`
	var player, inventory, flags string
	var updatedAt int64
	data := &gametypes.GameData{UserID: userID}
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&player, &inventory, &data.Sanity, &flags, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{Table: "game_data", Key: userID}
		}
		return nil, fmt.Errorf("failed to scan game data: %v", err)
	}

	cols := &gameDataColumns{
		player:     []byte(player),
		inventory:  []byte(inventory),
		storyFlags: []byte(flags),
	}
	if err := decodeGameData(data, cols); err != nil {
		return nil, err
	}
	data.UpdatedAt = time.UnixMilli(updatedAt)
	return data, nil
}

func (r *SQLiteRepository) DeleteGameData(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM game_data WHERE user_id = ?;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete game data: %v", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if n == 0 {
		return &ErrNotFound{Table: "game_data", Key: userID}
	}
	return nil
}

func (r *SQLiteRepository) SaveUserEmail(ctx context.Context, userID string, email string) error {
	q := `
	INSERT INTO user_emails (id, email) VALUES (?, ?)
	ON CONFLICT (id) DO UPDATE SET email = excluded.email;
	`
	if _, err := r.db.ExecContext(ctx, q, userID, email); err != nil {
		return fmt.Errorf("failed to upsert user email: %v", err)
	}
	return nil
}

func (r *SQLiteRepository) GetUserIDByEmail(ctx context.Context, email string) (string, error) {
	var id string
	if err := r.db.QueryRowContext(ctx, `SELECT id FROM user_emails WHERE email = ?;`, email).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return "", &ErrNotFound{Table: "user_emails", Key: email}
		}
		return "", fmt.Errorf("failed to scan user id: %v", err)
	}
	return id, nil
}

func (r *SQLiteRepository) SaveMap(ctx context.Context, m *gametypes.MapInfo) error {
	items, err := encodeItems(m.Items)
	if err != nil {
		return err
	}
	q := `
	INSERT INTO maps (name, accessible, items) VALUES (?, ?, ?)
	ON CONFLICT (name) DO UPDATE SET accessible = excluded.accessible, items = excluded.items;
	`
	if _, err := r.db.ExecContext(ctx, q, m.Name, m.Accessible, string(items)); err != nil {
		return fmt.Errorf("failed to upsert map: %v", err)
	}
	return nil
}

func (r *SQLiteRepository) GetMap(ctx context.Context, name string) (*gametypes.MapInfo, error) {
	var items string
	m := &gametypes.MapInfo{Name: name}
	if err := r.db.QueryRowContext(ctx, `SELECT accessible, items FROM maps WHERE name = ?;`, name).Scan(&m.Accessible, &items); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{Table: "maps", Key: name}
		}
		return nil, fmt.Errorf("failed to scan map: %v", err)
	}
	decoded, err := decodeItems([]byte(items))
	if err != nil {
		return nil, err
	}
	m.Items = decoded
	return m, nil
}

func (r *SQLiteRepository) ListMaps(ctx context.Context) ([]*gametypes.MapInfo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, accessible, items FROM maps ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query maps: %v", err)
	}
	defer rows.Close()

	maps := make([]*gametypes.MapInfo, 0)
	for rows.Next() {
		var items string
		m := &gametypes.MapInfo{}
		if err := rows.Scan(&m.Name, &m.Accessible, &items); err != nil {
			return nil, fmt.Errorf("failed to scan map: %v", err)
		}
		if m.Items, err = decodeItems([]byte(items)); err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate maps: %v", err)
	}
	return maps, nil
}
