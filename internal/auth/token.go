// Package auth signs and verifies the cookie values used by the web layer.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that are malformed, tampered with or expired.
var ErrInvalidToken = errors.New("invalid token")

// Notice is a one-shot message shown on the next rendered page.
type Notice struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

type flashClaims struct {
	jwt.RegisteredClaims
	Notices []Notice `json:"n"`
}

// Signer issues HS256 tokens with a shared secret.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("signing secret is required")
	}
	return &Signer{secret: []byte(secret)}, nil
}

// SignSession wraps a session id. The token carries nothing else, so the
// cookie stays opaque and the user is resolved server-side.
func (s *Signer) SignSession(sessionID string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sessionID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ParseSession returns the session id carried by a token from SignSession.
func (s *Signer) ParseSession(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}

func (s *Signer) SignFlash(notices []Notice, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, flashClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		Notices: notices,
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign flash token: %w", err)
	}
	return signed, nil
}

func (s *Signer) ParseFlash(tokenString string) ([]Notice, error) {
	claims := &flashClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims.Notices, nil
}

func (s *Signer) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
