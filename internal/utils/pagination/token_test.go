package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	entryDate := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)

	token := EncodeToken(entryDate, 1234)
	assert.NotEmpty(t, token, "Token should not be empty")

	cursor, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, entryDate, cursor.Date, "Entry date should match after decode")
	assert.Equal(t, int64(1234), cursor.ID, "ID should match after decode")

	// time of day is dropped, entries are dated by calendar day
	withClock := time.Date(2023, 5, 15, 14, 30, 45, 0, time.UTC)
	cursor, err = DecodeToken(EncodeToken(withClock, 7))
	assert.NoError(t, err)
	assert.Equal(t, entryDate, cursor.Date)
}

func TestDecodeTokenError(t *testing.T) {
	_, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.URLEncoding.EncodeToString([]byte("2023-05-15"))
	_, err = DecodeToken(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.URLEncoding.EncodeToString([]byte("notadate|12"))
	_, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "entry date parse")

	badID := base64.URLEncoding.EncodeToString([]byte("2023-05-15|abc"))
	_, err = DecodeToken(badID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "id parse")
}

func TestCursorBefore(t *testing.T) {
	c := Cursor{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), ID: 50}

	assert.True(t, c.Before(time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), 99))
	assert.True(t, c.Before(c.Date, 49))
	assert.False(t, c.Before(c.Date, 50))
	assert.False(t, c.Before(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), 1))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 50, ClampLimit(0, 50, 100))
	assert.Equal(t, 100, ClampLimit(500, 50, 100))
	assert.Equal(t, 10, ClampLimit(10, 50, 100))
}
