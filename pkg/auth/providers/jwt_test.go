package providers

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTAuthProvider_EmptySecret(t *testing.T) {
	_, err := NewJWTAuthProvider(NewJWTAuthProviderOptions{})
	assert.Error(t, err)
}

func TestJWTAuthProvider_VerifyToken(t *testing.T) {
	provider, err := NewJWTAuthProvider(NewJWTAuthProviderOptions{Secret: "shh", Audience: "authenticated"})
	require.NoError(t, err)

	other, err := NewJWTAuthProvider(NewJWTAuthProviderOptions{Secret: "other", Audience: "authenticated"})
	require.NoError(t, err)

	noAudience, err := NewJWTAuthProvider(NewJWTAuthProviderOptions{Secret: "shh"})
	require.NoError(t, err)

	valid, err := provider.IssueToken("user-1", "wanderer@example.com", time.Hour)
	require.NoError(t, err)
	expired, err := provider.IssueToken("user-1", "", -time.Minute)
	require.NoError(t, err)
	forged, err := other.IssueToken("user-1", "", time.Hour)
	require.NoError(t, err)
	wrongAudience, err := noAudience.IssueToken("user-1", "", time.Hour)
	require.NoError(t, err)
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Audience:  jwt.ClaimStrings{"authenticated"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("shh"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		want    *TokenClaims
		wantErr bool
	}{
		{name: "valid", token: valid, want: &TokenClaims{UID: "user-1", Email: "wanderer@example.com"}},
		{name: "expired", token: expired, wantErr: true},
		{name: "wrong secret", token: forged, wantErr: true},
		{name: "wrong audience", token: wrongAudience, wantErr: true},
		{name: "missing subject", token: noSubject, wantErr: true},
		{name: "garbage", token: "not-a-token", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := provider.VerifyToken(context.Background(), tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
