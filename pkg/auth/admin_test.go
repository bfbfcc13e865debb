package auth

import (
	"context"
	"errors"
	"testing"

	repomocks "github.com/cbodonnell/wayfarer/mocks/github.com/cbodonnell/wayfarer/pkg/repositories"
	"github.com/cbodonnell/wayfarer/pkg/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type fakeDeleter struct {
	deleted []string
	err     error
}

func (f *fakeDeleter) DeleteUser(ctx context.Context, uid string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, uid)
	return nil
}

func TestAdmin_DeleteUserByEmail(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(repository *repomocks.Repository)
		deleterErr  error
		want        bool
		wantDeleted []string
	}{
		{
			name: "deletes user and game data",
			setup: func(repository *repomocks.Repository) {
				repository.EXPECT().GetUserIDByEmail(mock.Anything, "a@example.com").Return("user-1", nil).Once()
				repository.EXPECT().DeleteGameData(mock.Anything, "user-1").Return(nil).Once()
			},
			want:        true,
			wantDeleted: []string{"user-1"},
		},
		{
			name: "user without saved game",
			setup: func(repository *repomocks.Repository) {
				repository.EXPECT().GetUserIDByEmail(mock.Anything, "a@example.com").Return("user-1", nil).Once()
				repository.EXPECT().DeleteGameData(mock.Anything, "user-1").Return(&repositories.ErrNotFound{}).Once()
			},
			want:        true,
			wantDeleted: []string{"user-1"},
		},
		{
			name: "unknown email",
			setup: func(repository *repomocks.Repository) {
				repository.EXPECT().GetUserIDByEmail(mock.Anything, "a@example.com").Return("", &repositories.ErrNotFound{}).Once()
			},
			want: false,
		},
		{
			name: "lookup failure",
			setup: func(repository *repomocks.Repository) {
				repository.EXPECT().GetUserIDByEmail(mock.Anything, "a@example.com").Return("", errors.New("boom")).Once()
			},
			want: false,
		},
		{
			name: "identity platform refuses",
			setup: func(repository *repomocks.Repository) {
				repository.EXPECT().GetUserIDByEmail(mock.Anything, "a@example.com").Return("user-1", nil).Once()
			},
			deleterErr: errors.New("permission denied"),
			want:       false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := repomocks.NewRepository(t)
			tt.setup(repository)
			deleter := &fakeDeleter{err: tt.deleterErr}
			admin := NewAdmin(NewAdminOptions{Repository: repository, Deleter: deleter})

			got := admin.DeleteUserByEmail(context.Background(), "a@example.com")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantDeleted, deleter.deleted)
		})
	}
}
