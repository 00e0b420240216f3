package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdOn := time.Date(2026, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(createdOn, 42)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedTime, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.True(t, createdOn.Equal(decodedTime), "Created time should match after decode")
	assert.Equal(t, int64(42), decodedID)

	zeroToken := EncodeToken(time.Time{}, 0)
	decodedZero, decodedZeroID, err := DecodeToken(zeroToken)
	assert.NoError(t, err)
	assert.True(t, decodedZero.IsZero())
	assert.Zero(t, decodedZeroID)
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	_, _, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("no-separator")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, _, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("yesterday|1")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "created_on parse")

	_, _, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano) + "|abc")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "id parse")
}
