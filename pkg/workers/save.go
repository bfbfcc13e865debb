package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/wayfarer/pkg/game/types"
	"github.com/cbodonnell/wayfarer/pkg/log"
	"github.com/cbodonnell/wayfarer/pkg/repositories"
	"github.com/google/uuid"
)

// GameDataSource lists the game data of every live session
type GameDataSource interface {
	Snapshots() []*types.GameData
}

const DefaultSaveInterval = 10 * time.Second

type SaveGameDataWorker struct {
	repository   repositories.Repository
	saveDataChan <-chan SaveGameDataRequest
	source       GameDataSource
	interval     time.Duration
	logger       *log.Logger
}

type NewSaveGameDataWorkerOptions struct {
	Repository   repositories.Repository
	SaveDataChan <-chan SaveGameDataRequest
	// Source is flushed every Interval; it may be nil
	Source   GameDataSource
	Interval time.Duration
	// Logger defaults to the "save-worker" component of the default logger
	Logger *log.Logger
}

type SaveGameDataRequest struct {
	ID   uuid.UUID
	Data *types.GameData
}

// NewSaveGameDataRequest wraps a snapshot in a request with a fresh id
func NewSaveGameDataRequest(data *types.GameData) SaveGameDataRequest {
	return SaveGameDataRequest{
		ID:   uuid.New(),
		Data: data,
	}
}

// NewSaveGameDataWorker creates a new SaveGameDataWorker.
// The worker processes save requests from the stores and
// periodically saves every live session to the repository.
func NewSaveGameDataWorker(opts NewSaveGameDataWorkerOptions) *SaveGameDataWorker {
	if opts.Interval <= 0 {
		opts.Interval = DefaultSaveInterval
	}
	if opts.Logger == nil {
		opts.Logger = log.WithComponent("save-worker")
	}
	return &SaveGameDataWorker{
		repository:   opts.Repository,
		saveDataChan: opts.SaveDataChan,
		source:       opts.Source,
		interval:     opts.Interval,
		logger:       opts.Logger,
	}
}

// Start runs until ctx is done, then saves any requests still buffered
// and flushes the live sessions one last time.
func (w *SaveGameDataWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.drain()
			w.Flush(context.Background())
			return
		case saveRequest := <-w.saveDataChan:
			w.saveGameData(ctx, saveRequest)
		case <-ticker.C:
			w.Flush(ctx)
		}
	}
}

// Flush saves the current game data of every live session
func (w *SaveGameDataWorker) Flush(ctx context.Context) {
	if w.source == nil {
		return
	}
	for _, data := range w.source.Snapshots() {
		w.saveGameData(ctx, NewSaveGameDataRequest(data))
	}
}

func (w *SaveGameDataWorker) drain() {
	ctx := context.Background()
	for {
		select {
		case saveRequest := <-w.saveDataChan:
			w.saveGameData(ctx, saveRequest)
		default:
			return
		}
	}
}

func (w *SaveGameDataWorker) saveGameData(ctx context.Context, saveRequest SaveGameDataRequest) {
	if saveRequest.Data == nil || saveRequest.Data.UserID == "" {
		return
	}
	w.logger.Trace("Saving game data for user %s (request %s)", saveRequest.Data.UserID, saveRequest.ID)
	if err := w.repository.SaveGameData(ctx, saveRequest.Data); err != nil {
		w.logger.Error("Failed to save game data for user %s: %v", saveRequest.Data.UserID, err)
	}
}
