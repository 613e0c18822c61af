package lock

import (
	"context"

	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
)

// Open returns a redis locker when addr is set and a LocalLocker otherwise.
// The returned func closes the redis connection.
func Open(ctx context.Context, addr, password string, db int) (portssvc.Locker, func(), error) {
	if addr == "" {
		return NewLocalLocker(), func() {}, nil
	}
	rdb, err := NewRedisClient(ctx, addr, password, db)
	if err != nil {
		return nil, nil, err
	}
	return NewRedisLocker(rdb), func() { _ = rdb.Close() }, nil
}
