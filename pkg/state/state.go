package state

import (
	"context"

	"github.com/cbodonnell/wayfarer/pkg/game"
)

// SessionManager provides shared access to the stores of logged in users.
// Implementations must be thread-safe.
type SessionManager interface {
	// FetchUser verifies the session token and returns the user's store,
	// loading the saved game on first access.
	FetchUser(ctx context.Context, token string) (*game.Store, error)
	// Get returns the live store of the user, if any.
	Get(userID string) (*game.Store, bool)
	// Logout clears the user's store and forgets it.
	Logout(ctx context.Context, userID string)
}

// SessionRevoker is implemented by auth providers that can end a user's
// sessions on the identity platform.
type SessionRevoker interface {
	RevokeSessions(ctx context.Context, uid string) error
}
