package providers

import "context"

// AuthProvider resolves a session token issued by the identity platform
type AuthProvider interface {
	VerifyToken(ctx context.Context, idToken string) (*TokenClaims, error)
}

type TokenClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
}
