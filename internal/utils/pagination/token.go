package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// Cursor identifies the last row of a page ordered by (date desc, id desc).
type Cursor struct {
	Date time.Time
	ID   int64
}

// EncodeToken creates a base64 encoded token from an entry date and id.
func EncodeToken(entryDate time.Time, id int64) string {
	tokenStr := fmt.Sprintf("%s|%d", entryDate.Format(dateFormat), id)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into a cursor.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	entryDate, err := time.Parse(dateFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (id parse): %w", err)
	}
	return Cursor{Date: entryDate, ID: id}, nil
}

// Before reports whether a row at (date, id) sorts after the cursor in (date desc, id desc) order.
func (c Cursor) Before(date time.Time, id int64) bool {
	if date.Equal(c.Date) {
		return id < c.ID
	}
	return date.Before(c.Date)
}

// ClampLimit applies the default page size and the upper bound.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
