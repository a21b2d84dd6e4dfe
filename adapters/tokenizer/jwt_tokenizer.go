package tokenizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/janus-auth/janus/core"
	"github.com/janus-auth/janus/ports"
)

// JWTTokenizer implements the Tokenizer interface with HS256-signed JWTs.
// Claims are the registered set only: subject, issued-at, expiry, plus a
// random token ID so that two issuances for the same subject never collide
// even within the same clock tick.
type JWTTokenizer struct {
	key []byte
}

// NewJWTTokenizer creates a tokenizer around the process signing key. The key
// is read-only for the process lifetime.
func NewJWTTokenizer(secret []byte) ports.Tokenizer {
	return &JWTTokenizer{key: secret}
}

// Issue signs a token asserting subject, valid from now until now + validity.
func (t *JWTTokenizer) Issue(subject string, validity time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify parses tokenStr and returns its subject. The library verifies the
// signature before it validates claims, so an expiry failure here can only
// come from a genuine token; a tampered token fails as invalid regardless of
// its expiry. Expiry is compared against wall-clock now with no leeway.
func (t *JWTTokenizer) Verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", core.ErrTokenExpired
		}
		return "", core.ErrTokenInvalid
	}

	if !token.Valid {
		return "", core.ErrTokenInvalid
	}

	return claims.Subject, nil
}
