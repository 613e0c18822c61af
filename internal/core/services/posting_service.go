package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/SscSPs/books_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/books_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
	"github.com/go-playground/validator/v10"
)

// postingService applies the posting rules and hands the result to the ledger store.
type postingService struct {
	BaseService
	postingMap  domain.PostingMap
	accountRepo portsrepo.AccountReader
	ledger      portssvc.LedgerWriterSvc
	validate    *validator.Validate
}

// PostingServiceOption is a functional option for configuring the posting service
type PostingServiceOption func(*postingService)

// WithPostingMap replaces the built-in category and payment-method routing.
func WithPostingMap(m domain.PostingMap) PostingServiceOption {
	return func(s *postingService) {
		s.postingMap = m
	}
}

// NewPostingService creates the posting rules engine service.
func NewPostingService(accountRepo portsrepo.AccountReader, ledger portssvc.LedgerWriterSvc, options ...PostingServiceOption) portssvc.PostingSvc {
	svc := &postingService{
		postingMap:  domain.DefaultPostingMap(),
		accountRepo: accountRepo,
		ledger:      ledger,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PostingSvc = (*postingService)(nil)

func (s *postingService) snapshot(ctx context.Context) (ChartSnapshot, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, domain.AccountFilter{})
	if err != nil {
		return ChartSnapshot{}, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	return NewChartSnapshot(accounts), nil
}

func (s *postingService) check(record any) error {
	if err := s.validate.Struct(record); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}

// apply builds the candidate entry with rule and posts it. Rule failures never reach the store.
func (s *postingService) apply(ctx context.Context, event string, sourceID int64, rule func(ChartSnapshot) (domain.PostingRequest, error)) (*domain.JournalEntry, error) {
	chart, err := s.snapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to snapshot chart of accounts", slog.String("event", event))
		return nil, err
	}

	req, err := rule(chart)
	if err != nil {
		var mappingErr *apperrors.MappingError
		switch {
		case errors.As(err, &mappingErr):
			s.LogError(ctx, err, "No journal entry created: account mapping failed",
				slog.String("event", event),
				slog.Int64("source_id", sourceID),
				slog.String("account_code", mappingErr.AccountCode),
				slog.String("role", mappingErr.Role))
		case errors.Is(err, apperrors.ErrNotPostable):
			s.LogDebug(ctx, "Event produces no journal entry",
				slog.String("event", event),
				slog.Int64("source_id", sourceID))
		default:
			s.LogError(ctx, err, "No journal entry created",
				slog.String("event", event),
				slog.Int64("source_id", sourceID))
		}
		return nil, err
	}

	entry, err := s.ledger.Post(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to post %s %d: %w", event, sourceID, err)
	}
	return entry, nil
}

func (s *postingService) PostCashTransaction(ctx context.Context, txn domain.CashTransaction) (*domain.JournalEntry, error) {
	if err := s.check(txn); err != nil {
		return nil, err
	}
	return s.apply(ctx, EventCashTransaction, txn.TransactionID, func(chart ChartSnapshot) (domain.PostingRequest, error) {
		return CashTransactionPosting(s.postingMap, chart, txn)
	})
}

func (s *postingService) PostInvoiceSent(ctx context.Context, inv domain.Invoice) (*domain.JournalEntry, error) {
	if err := s.check(inv); err != nil {
		return nil, err
	}
	if !inv.Status.HasBeenSent() {
		return nil, fmt.Errorf("%w: invoice %s is still a draft", apperrors.ErrConflict, inv.InvoiceNumber)
	}
	return s.apply(ctx, EventInvoiceSent, inv.InvoiceID, func(chart ChartSnapshot) (domain.PostingRequest, error) {
		return InvoiceSentPosting(s.postingMap, chart, inv)
	})
}

func (s *postingService) PostInvoicePayment(ctx context.Context, inv domain.Invoice, payment domain.Payment) (*domain.JournalEntry, error) {
	if err := s.check(inv); err != nil {
		return nil, err
	}
	if !inv.Status.HasBeenSent() {
		return nil, fmt.Errorf("%w: invoice %s has not been sent", apperrors.ErrConflict, inv.InvoiceNumber)
	}
	return s.apply(ctx, EventInvoicePayment, inv.InvoiceID, func(chart ChartSnapshot) (domain.PostingRequest, error) {
		return InvoicePaymentPosting(s.postingMap, chart, inv, payment)
	})
}

func (s *postingService) PostBillReceived(ctx context.Context, bill domain.Bill) (*domain.JournalEntry, error) {
	if err := s.check(bill); err != nil {
		return nil, err
	}
	if !bill.Status.HasBeenReceived() {
		return nil, fmt.Errorf("%w: bill %s is still a draft", apperrors.ErrConflict, bill.BillNumber)
	}
	return s.apply(ctx, EventBillReceived, bill.BillID, func(chart ChartSnapshot) (domain.PostingRequest, error) {
		return BillReceivedPosting(s.postingMap, chart, bill)
	})
}

func (s *postingService) PostBillPayment(ctx context.Context, bill domain.Bill, payment domain.Payment) (*domain.JournalEntry, error) {
	if err := s.check(bill); err != nil {
		return nil, err
	}
	return s.apply(ctx, EventBillPayment, bill.BillID, func(chart ChartSnapshot) (domain.PostingRequest, error) {
		return BillPaymentPosting(s.postingMap, chart, bill, payment)
	})
}

func (s *postingService) PostManual(ctx context.Context, req domain.PostingRequest) (*domain.JournalEntry, error) {
	candidate, err := ManualPosting(req)
	if err != nil {
		s.LogError(ctx, err, "Rejected manual journal entry", slog.String("entry_type", string(req.EntryType)))
		return nil, err
	}
	return s.ledger.Post(ctx, candidate)
}
