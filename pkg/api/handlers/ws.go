package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/cbodonnell/wayfarer/pkg/log"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const writeTimeout = 5 * time.Second

// HandleGameFeed upgrades to a websocket and pushes the game state after every change
func HandleGameFeed(originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFromRequest(w, r)
		if !ok {
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			log.Error("failed to accept websocket: %v", err)
			return
		}
		defer c.CloseNow()

		id, updates := store.Subscribe()
		defer store.Unsubscribe(id)

		// the feed is one-way; CloseRead cancels ctx when the client goes away
		ctx := c.CloseRead(r.Context())

		if err := write(ctx, c, NewGameResponse(store)); err != nil {
			log.Debug("failed to write initial game state: %v", err)
			return
		}

		for {
			select {
			case <-ctx.Done():
				log.Debug("Game feed of user %s closed: %v", store.UserID(), ctx.Err())
				return
			case _, ok := <-updates:
				if !ok {
					c.Close(websocket.StatusNormalClosure, "logged out")
					return
				}
				if err := write(ctx, c, NewGameResponse(store)); err != nil {
					log.Debug("failed to write game state: %v", err)
					return
				}
			}
		}
	}
}

func write(ctx context.Context, c *websocket.Conn, v interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, c, v)
}
