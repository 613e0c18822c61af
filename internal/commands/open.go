package commands

import (
	"context"
	"errors"
	"fmt"

	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
	"github.com/SscSPs/books_ledger/internal/core/services"
	"github.com/SscSPs/books_ledger/internal/platform/lock"
	"github.com/SscSPs/books_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/books_ledger/pkg/database"
)

var errNoDatabase = errors.New("PGSQL_URL is not set")

func openServices(ctx context.Context, a *app) (*portssvc.ServiceContainer, func(), error) {
	if a.cfg.DatabaseURL == "" {
		return nil, nil, errNoDatabase
	}
	pool, err := database.NewPgxPool(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	locker, closeLocker, err := lock.Open(ctx, a.cfg.RedisAddress, a.cfg.RedisPassword, a.cfg.RedisDB)
	if err != nil {
		database.ClosePgxPool(pool)
		return nil, nil, fmt.Errorf("failed to set up locking: %w", err)
	}

	container := services.NewServiceContainer(a.cfg, pgsql.NewRepositoryProvider(pool), locker)
	return container, func() {
		closeLocker()
		database.ClosePgxPool(pool)
	}, nil
}
