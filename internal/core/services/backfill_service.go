package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/SscSPs/books_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/books_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BackfillLockKey is the lock name held for the duration of a backfill run.
const BackfillLockKey = "ledger:backfill"

const defaultBackfillLockTTL = 5 * time.Minute

// backfillService walks the source records and posts every event that has no entry yet.
type backfillService struct {
	BaseService
	sources portsrepo.SourceEventReader
	ledger  portssvc.LedgerReaderSvc
	posting portssvc.PostingSvc
	locker  portssvc.Locker
	lockTTL time.Duration
}

// BackfillServiceOption is a functional option for configuring the backfill service
type BackfillServiceOption func(*backfillService)

// WithBackfillLockTTL sets how long the run lock lives without being released.
func WithBackfillLockTTL(ttl time.Duration) BackfillServiceOption {
	return func(s *backfillService) {
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

// NewBackfillService creates the migration/backfill driver.
func NewBackfillService(sources portsrepo.SourceEventReader, ledger portssvc.LedgerReaderSvc, posting portssvc.PostingSvc, locker portssvc.Locker, options ...BackfillServiceOption) portssvc.BackfillSvc {
	svc := &backfillService{
		sources: sources,
		ledger:  ledger,
		posting: posting,
		locker:  locker,
		lockTTL: defaultBackfillLockTTL,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BackfillSvc = (*backfillService)(nil)

// Run posts missing entries under the backfill lock. A held lock fails with apperrors.ErrLocked.
func (s *backfillService) Run(ctx context.Context, opts domain.BackfillOptions) (*domain.BackfillResult, error) {
	result := &domain.BackfillResult{
		RunID:     uuid.NewString(),
		DryRun:    opts.DryRun,
		StartedAt: time.Now(),
		Failures:  []domain.BackfillFailure{},
	}
	logger := s.GetLogger(ctx).With(slog.String("run_id", result.RunID), slog.Bool("dry_run", opts.DryRun))

	err := s.locker.WithLock(ctx, BackfillLockKey, s.lockTTL, func(ctx context.Context) error {
		return s.run(ctx, opts, result)
	})
	result.FinishedAt = time.Now()
	if err != nil {
		if errors.Is(err, apperrors.ErrLocked) {
			logger.Warn("Backfill already running elsewhere")
		} else {
			logger.Error("Backfill aborted", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Backfill finished",
		slog.Int("created", result.Created),
		slog.Int("already_present", result.AlreadyPresent),
		slog.Int("not_postable", result.NotPostable),
		slog.Int("failures", len(result.Failures)),
		slog.Duration("elapsed", result.FinishedAt.Sub(result.StartedAt)))
	return result, nil
}

func (s *backfillService) run(ctx context.Context, opts domain.BackfillOptions, result *domain.BackfillResult) error {
	txns, err := s.sources.ListCashTransactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}
	for _, txn := range txns {
		if !txn.IsPostable() {
			result.NotPostable++
			continue
		}
		refs := domain.SourceRefs{TransactionID: int64Ptr(txn.TransactionID)}
		if err := s.ensure(ctx, opts, result, txn.EntryType(), refs, func(ctx context.Context) error {
			_, err := s.posting.PostCashTransaction(ctx, txn)
			return err
		}); err != nil {
			return err
		}
	}

	invoices, err := s.sources.ListInvoices(ctx, []domain.InvoiceStatus{domain.InvoiceSent, domain.InvoicePaid, domain.InvoiceOverdue})
	if err != nil {
		return fmt.Errorf("failed to list invoices: %w", err)
	}
	for _, inv := range invoices {
		refs := domain.SourceRefs{InvoiceID: int64Ptr(inv.InvoiceID)}
		if err := s.ensure(ctx, opts, result, domain.EntryAutoInvoice, refs, func(ctx context.Context) error {
			_, err := s.posting.PostInvoiceSent(ctx, inv)
			return err
		}); err != nil {
			return err
		}
		if inv.Status != domain.InvoicePaid {
			continue
		}
		payment := domain.Payment{Date: inv.InvoiceDate}
		if inv.PaidDate != nil {
			payment.Date = *inv.PaidDate
		}
		if err := s.ensure(ctx, opts, result, domain.EntryAutoPayment, refs, func(ctx context.Context) error {
			_, err := s.posting.PostInvoicePayment(ctx, inv, payment)
			return err
		}); err != nil {
			return err
		}
	}

	bills, err := s.sources.ListBills(ctx, []domain.BillStatus{domain.BillReceived, domain.BillPaid, domain.BillOverdue})
	if err != nil {
		return fmt.Errorf("failed to list bills: %w", err)
	}
	billIDs := make([]int64, len(bills))
	for i, bill := range bills {
		billIDs[i] = bill.BillID
	}
	payments, err := s.sources.ListBillPayments(ctx, billIDs)
	if err != nil {
		return fmt.Errorf("failed to list bill payments: %w", err)
	}
	paymentsByBill := make(map[int64][]domain.Payment, len(bills))
	for _, p := range payments {
		paymentsByBill[p.BillID] = append(paymentsByBill[p.BillID], p.Payment)
	}

	for _, bill := range bills {
		refs := domain.SourceRefs{BillID: int64Ptr(bill.BillID)}
		failed := len(result.Failures)
		if err := s.ensure(ctx, opts, result, domain.EntryAutoBill, refs, func(ctx context.Context) error {
			_, err := s.posting.PostBillReceived(ctx, bill)
			return err
		}); err != nil {
			return err
		}
		if len(result.Failures) > failed {
			// paying a bill that never reached AP would leave the payable negative
			for _, p := range paymentsByBill[bill.BillID] {
				result.Failures = append(result.Failures, domain.BackfillFailure{
					EntryType: domain.EntryAutoBillPayment,
					SourceID:  p.PaymentID,
					Reason:    fmt.Sprintf("bill %s has no ledger entry", bill.BillNumber),
				})
			}
			continue
		}

		paid := decimal.Zero
		for _, p := range paymentsByBill[bill.BillID] {
			before := billBeforePayment(bill, paid)
			paid = paid.Add(p.Amount)
			refs := domain.SourceRefs{BillID: int64Ptr(bill.BillID), PaymentID: int64Ptr(p.PaymentID)}
			if err := s.ensure(ctx, opts, result, domain.EntryAutoBillPayment, refs, func(ctx context.Context) error {
				_, err := s.posting.PostBillPayment(ctx, before, p)
				return err
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// billBeforePayment rebuilds the state a bill was in when a recorded payment was made:
// only the earlier payments count as paid and the bill was still open.
func billBeforePayment(bill domain.Bill, paidEarlier decimal.Decimal) domain.Bill {
	bill.AmountPaid = paidEarlier
	if bill.Status == domain.BillPaid {
		bill.Status = domain.BillReceived
	}
	return bill
}

// ensure posts one event unless an entry already exists for it. Event-level failures are
// recorded on the result; only infrastructure errors and cancellation stop the run.
func (s *backfillService) ensure(ctx context.Context, opts domain.BackfillOptions, result *domain.BackfillResult,
	entryType domain.EntryType, refs domain.SourceRefs, post func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sourceID, _ := refs.SourceID(entryType)

	exists, err := s.ledger.ExistsForSource(ctx, entryType, refs)
	if err != nil {
		return fmt.Errorf("failed to check %s entry for source %d: %w", entryType, sourceID, err)
	}
	if exists {
		result.AlreadyPresent++
		return nil
	}
	if opts.DryRun {
		result.Created++
		return nil
	}

	err = post(ctx)
	switch {
	case err == nil:
		result.Created++
	case errors.Is(err, apperrors.ErrDuplicate):
		// posted by a live request since the existence check
		result.AlreadyPresent++
	case errors.Is(err, apperrors.ErrNotPostable):
		result.NotPostable++
	case errors.Is(err, apperrors.ErrMapping), errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrUnbalanced), errors.Is(err, apperrors.ErrConflict):
		result.Failures = append(result.Failures, domain.BackfillFailure{
			EntryType: entryType,
			SourceID:  sourceID,
			Reason:    err.Error(),
		})
		s.LogWarn(ctx, "Backfill skipped event",
			slog.String("entry_type", string(entryType)),
			slog.Int64("source_id", sourceID),
			slog.String("reason", err.Error()))
	default:
		return err
	}
	return nil
}
