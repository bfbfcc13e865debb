package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var _ AuthProvider = &JWTAuthProvider{}

// JWTAuthProvider verifies HS256 access tokens signed with a shared secret,
// the format hosted backends issue to browser sessions.
type JWTAuthProvider struct {
	secret   []byte
	audience string
	now      func() time.Time
}

type NewJWTAuthProviderOptions struct {
	Secret string
	// Audience is checked when non-empty, e.g. "authenticated"
	Audience string
}

type sessionClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func NewJWTAuthProvider(opts NewJWTAuthProviderOptions) (*JWTAuthProvider, error) {
	if opts.Secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &JWTAuthProvider{
		secret:   []byte(opts.Secret),
		audience: opts.Audience,
		now:      time.Now,
	}, nil
}

// VerifyToken checks the signature and expiry of the token and returns its subject
func (p *JWTAuthProvider) VerifyToken(ctx context.Context, idToken string) (*TokenClaims, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	}
	if p.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(p.audience))
	}

	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(idToken, claims, func(token *jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, parserOpts...)
	if err != nil {
		return nil, fmt.Errorf("error verifying token: %v", err)
	}
	if claims.Subject == "" {
		return nil, errors.New("error verifying token: missing subject")
	}

	return &TokenClaims{
		UID:   claims.Subject,
		Email: claims.Email,
	}, nil
}

// IssueToken signs a session token for uid valid for ttl
func (p *JWTAuthProvider) IssueToken(uid string, email string, ttl time.Duration) (string, error) {
	now := p.now()
	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if p.audience != "" {
		claims.Audience = jwt.ClaimStrings{p.audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %v", err)
	}
	return signed, nil
}
