package jwtinfra

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload: subject identity plus an absolute
// expiry a fixed duration from issuance.
type Claims struct {
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 session tokens. The token is
// self-contained: verification needs no server-side lookup except for
// revocation status, which is the session service's concern.
type Provider struct {
	secret []byte
	ttl    time.Duration
}

func NewProvider(secret string, ttl time.Duration) (*Provider, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &Provider{secret: []byte(secret), ttl: ttl}, nil
}

// Sign mints a token for the subject, expiring TTL from now.
func (p *Provider) Sign(subject string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Verify checks the signature and expiry and returns the embedded claims.
func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// TTL is the validity window applied at issuance.
func (p *Provider) TTL() time.Duration {
	return p.ttl
}
