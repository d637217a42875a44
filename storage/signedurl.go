package storage

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AudioURLSigner mints and verifies short-lived tokens granting read access
// to a single audio object, standing in for presigned object-storage URLs.
type AudioURLSigner struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewAudioURLSignerFromEnv reads the signing secret from JWT_SECRET so
// playback tokens share the key material with the auth tokens.
func NewAudioURLSignerFromEnv(ttl time.Duration) (*AudioURLSigner, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AudioURLSigner{
		secret: []byte(secret),
		issuer: "echo-journal",
		ttl:    ttl,
	}, nil
}

// Sign issues a token granting access to exactly one storage key.
func (s *AudioURLSigner) Sign(key string) (string, error) {
	claims := jwt.MapClaims{
		"path": key,
		"iss":  s.issuer,
		"exp":  time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the token and returns the storage key it grants.
func (s *AudioURLSigner) Verify(tokenString string) (string, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	path, _ := claims["path"].(string)
	if path == "" {
		return "", fmt.Errorf("token missing path claim")
	}
	return path, nil
}
