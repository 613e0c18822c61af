package services

import (
	"context"
	"time"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Ledger    LedgerSvcFacade
	Posting   PostingSvc
	Balance   BalanceSvc
	Reporting ReportingService
	Backfill  BackfillSvc
}

// Locker provides named mutual exclusion across processes.
type Locker interface {
	// WithLock runs fn while holding key. It fails with apperrors.ErrLocked when the key is held elsewhere.
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error
}
