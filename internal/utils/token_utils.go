package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateAccessToken signs an HS256 bearer token whose subject is the acting holder name.
// The API authenticates tokens only; issuing them for real users belongs to an identity provider.
func GenerateAccessToken(holderName, secret, issuer string, ttl time.Duration) (string, error) {
	if holderName == "" {
		return "", errors.New("holder name is required")
	}
	if secret == "" {
		return "", errors.New("signing secret is required")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   holderName,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
