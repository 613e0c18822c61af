package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
)

// LocalLocker serializes work inside one process. It is used when no redis is configured.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

var _ portssvc.Locker = (*LocalLocker)(nil)

// NewLocalLocker creates an in-process locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]bool)}
}

// WithLock runs fn unless key is already held. ttl is ignored, the lock lives as long as fn.
func (l *LocalLocker) WithLock(ctx context.Context, key string, _ time.Duration, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	if l.held[key] {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s", apperrors.ErrLocked, key)
	}
	l.held[key] = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}()
	return fn(ctx)
}
