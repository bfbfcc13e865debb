package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	gametypes "github.com/cbodonnell/wayfarer/pkg/game/types"
	"github.com/cbodonnell/wayfarer/pkg/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Repository = &PostgresRepository{}

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to the database and applies the bundled schema.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (*PostgresRepository, error) {
	pool, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}

	statements, err := embeddedMigrations("postgres")
	if err != nil {
		pool.Close()
		return nil, err
	}
	for i, statement := range statements {
		if _, err := pool.Exec(ctx, statement); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &PostgresRepository{
		pool: pool,
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = pool.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)
	return pool, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) SaveGameData(ctx context.Context, data *gametypes.GameData) error {
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
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (user_id) DO UPDATE SET
		player = $2, inventory = $3, sanity = $4, story_flags = $5, updated_at = $6;
	`
	_, err = r.pool.Exec(ctx, q, data.UserID, cols.player, cols.inventory, data.Sanity, cols.storyFlags, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert game data: %v", err)
	}
	return nil
}

func (r *PostgresRepository) LoadGameData(ctx context.Context, userID string) (*gametypes.GameData, error) {
	q := `
	SELECT player, inventory, sanity, story_flags, updated_at FROM game_data WHERE user_id = $1;
	`
	cols := &gameDataColumns{}
	data := &gametypes.GameData{UserID: userID}
	err := r.pool.QueryRow(ctx, q, userID).Scan(&cols.player, &cols.inventory, &data.Sanity, &cols.storyFlags, &data.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{Table: "game_data", Key: userID}
		}
		return nil, fmt.Errorf("failed to scan game data: %v", err)
	}
	if err := decodeGameData(data, cols); err != nil {
		return nil, err
	}
	return data, nil
}

func (r *PostgresRepository) DeleteGameData(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM game_data WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete game data: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrNotFound{Table: "game_data", Key: userID}
	}
	return nil
}

func (r *PostgresRepository) SaveUserEmail(ctx context.Context, userID string, email string) error {
	q := `
	INSERT INTO user_emails (id, email) VALUES ($1, $2)
	ON CONFLICT (id) DO UPDATE SET email = $2;
	`
	if _, err := r.pool.Exec(ctx, q, userID, email); err != nil {
		return fmt.Errorf("failed to upsert user email: %v", err)
	}
	return nil
}

func (r *PostgresRepository) GetUserIDByEmail(ctx context.Context, email string) (string, error) {
	var id string
	if err := r.pool.QueryRow(ctx, `SELECT id FROM user_emails WHERE email = $1;`, email).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", &ErrNotFound{Table: "user_emails", Key: email}
		}
		return "", fmt.Errorf("failed to scan user id: %v", err)
	}
	return id, nil
}

func (r *PostgresRepository) SaveMap(ctx context.Context, m *gametypes.MapInfo) error {
	items, err := encodeItems(m.Items)
	if err != nil {
		return err
	}
	q := `
	INSERT INTO maps (name, accessible, items) VALUES ($1, $2, $3)
	ON CONFLICT (name) DO UPDATE SET accessible = $2, items = $3;
	`
	if _, err := r.pool.Exec(ctx, q, m.Name, m.Accessible, items); err != nil {
		return fmt.Errorf("failed to upsert map: %v", err)
	}
	return nil
}

func (r *PostgresRepository) GetMap(ctx context.Context, name string) (*gametypes.MapInfo, error) {
	var items []byte
	m := &gametypes.MapInfo{Name: name}
	if err := r.pool.QueryRow(ctx, `SELECT accessible, items FROM maps WHERE name = $1;`, name).Scan(&m.Accessible, &items); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{Table: "maps", Key: name}
		}
		return nil, fmt.Errorf("failed to scan map: %v", err)
	}
	decoded, err := decodeItems(items)
	if err != nil {
		return nil, err
	}
	m.Items = decoded
	return m, nil
}

func (r *PostgresRepository) ListMaps(ctx context.Context) ([]*gametypes.MapInfo, error) {
	rows, err := r.pool.Query(ctx, `SELECT name, accessible, items FROM maps ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query maps: %v", err)
	}
	defer rows.Close()

	maps := make([]*gametypes.MapInfo, 0)
	for rows.Next() {
		var items []byte
		m := &gametypes.MapInfo{}
		if err := rows.Scan(&m.Name, &m.Accessible, &items); err != nil {
			return nil, fmt.Errorf("failed to scan map: %v", err)
		}
		if m.Items, err = decodeItems(items); err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate maps: %v", err)
	}
	return maps, nil
}
