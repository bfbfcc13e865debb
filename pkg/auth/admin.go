package auth

import (
	"context"
	"fmt"

	"github.com/cbodonnell/wayfarer/pkg/log"
	"github.com/cbodonnell/wayfarer/pkg/repositories"
)

// UserDeleter removes an account from the identity platform
type UserDeleter interface {
	DeleteUser(ctx context.Context, uid string) error
}

// Admin performs account maintenance that needs elevated credentials
type Admin struct {
	repository repositories.Repository
	deleter    UserDeleter
}

type NewAdminOptions struct {
	Repository repositories.Repository
	// Deleter may be nil when accounts are not managed by a hosted identity platform
	Deleter UserDeleter
}

func NewAdmin(opts NewAdminOptions) *Admin {
	return &Admin{
		repository: opts.Repository,
		deleter:    opts.Deleter,
	}
}

// GetUserIDByEmail looks the user up in the user_emails table
func (a *Admin) GetUserIDByEmail(ctx context.Context, email string) (string, error) {
	userID, err := a.repository.GetUserIDByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("error fetching user id: %v", err)
	}
	return userID, nil
}

// DeleteUserByEmail deletes the account registered with email and its saved game.
// It reports false when no user has the email or the identity platform refuses the deletion.
func (a *Admin) DeleteUserByEmail(ctx context.Context, email string) bool {
	userID, err := a.repository.GetUserIDByEmail(ctx, email)
	if err != nil {
		if !repositories.IsNotFound(err) {
			log.Error("Error fetching user ID: %v", err)
		}
		log.Info("No user found with email: %s", email)
		return false
	}

	if a.deleter != nil {
		if err := a.deleter.DeleteUser(ctx, userID); err != nil {
			log.Error("Failed to delete user: %v", err)
			return false
		}
	}

	if err := a.repository.DeleteGameData(ctx, userID); err != nil && !repositories.IsNotFound(err) {
		log.Error("Failed to delete game data of user %s: %v", userID, err)
	}

	log.Info("User with email %q deleted successfully", email)
	return true
}
