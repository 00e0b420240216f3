package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Account numbers are drawn from [MinAccountNumber, MaxAccountNumber].
const (
	MinAccountNumber int64 = 10_000_000
	MaxAccountNumber int64 = 99_999_999
)

// GenerateAccountNumber returns a cryptographically random 8-digit account number.
func GenerateAccountNumber() (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(MaxAccountNumber-MinAccountNumber+1))
	if err != nil {
		return 0, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return MinAccountNumber + n.Int64(), nil
}
