package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
	"github.com/SscSPs/books_ledger/internal/dto"
	"github.com/SscSPs/books_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler turns business events pushed by the bookkeeping application into ledger entries.
type postingHandler struct {
	postingService portssvc.PostingSvc
}

func newPostingHandler(ps portssvc.PostingSvc) *postingHandler {
	return &postingHandler{postingService: ps}
}

func registerPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvc) {
	h := newPostingHandler(postingService)

	postings := rg.Group("/postings")
	{
		postings.POST("/cash-transactions", h.postCashTransaction)
		postings.POST("/invoices/sent", h.postInvoiceSent)
		postings.POST("/invoices/payment", h.postInvoicePayment)
		postings.POST("/bills/received", h.postBillReceived)
		postings.POST("/bills/payment", h.postBillPayment)
	}
}

func (h *postingHandler) created(c *gin.Context, logger *slog.Logger, entry *domain.JournalEntry, err error) {
	if err != nil {
		respondError(c, logger, err, "Failed to post event")
		return
	}
	logger.Info("Event posted", slog.Int64("entry_id", entry.EntryID), slog.String("entry_type", string(entry.EntryType)))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *postingHandler) postCashTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var txn domain.CashTransaction
	if err := c.ShouldBindJSON(&txn); err != nil {
		bindFailed(c, logger, "CashTransaction", err)
		return
	}
	logger = logger.With(slog.Int64("transaction_id", txn.TransactionID))
	entry, err := h.postingService.PostCashTransaction(c.Request.Context(), txn)
	h.created(c, logger, entry, err)
}

func (h *postingHandler) postInvoiceSent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var inv domain.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		bindFailed(c, logger, "Invoice", err)
		return
	}
	logger = logger.With(slog.Int64("invoice_id", inv.InvoiceID))
	entry, err := h.postingService.PostInvoiceSent(c.Request.Context(), inv)
	h.created(c, logger, entry, err)
}

func (h *postingHandler) postInvoicePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.InvoicePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, logger, "InvoicePaymentRequest", err)
		return
	}
	logger = logger.With(slog.Int64("invoice_id", req.Invoice.InvoiceID))
	entry, err := h.postingService.PostInvoicePayment(c.Request.Context(), req.Invoice, req.Payment)
	h.created(c, logger, entry, err)
}

func (h *postingHandler) postBillReceived(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var bill domain.Bill
	if err := c.ShouldBindJSON(&bill); err != nil {
		bindFailed(c, logger, "Bill", err)
		return
	}
	logger = logger.With(slog.Int64("bill_id", bill.BillID))
	entry, err := h.postingService.PostBillReceived(c.Request.Context(), bill)
	h.created(c, logger, entry, err)
}

func (h *postingHandler) postBillPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BillPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, logger, "BillPaymentRequest", err)
		return
	}
	logger = logger.With(slog.Int64("bill_id", req.Bill.BillID), slog.Int64("payment_id", req.Payment.PaymentID))
	entry, err := h.postingService.PostBillPayment(c.Request.Context(), req.Bill, req.Payment)
	h.created(c, logger, entry, err)
}
