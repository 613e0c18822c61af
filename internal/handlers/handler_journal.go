package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
	"github.com/SscSPs/books_ledger/internal/dto"
	"github.com/SscSPs/books_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	ledgerService  portssvc.LedgerSvcFacade
	postingService portssvc.PostingSvc
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(ls portssvc.LedgerSvcFacade, ps portssvc.PostingSvc) *journalHandler {
	return &journalHandler{
		ledgerService:  ls,
		postingService: ps,
	}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, postingService portssvc.PostingSvc) {
	h := newJournalHandler(ledgerService, postingService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.DELETE("/:id", h.deleteEntry)
	}
}

// createEntry posts a manual or adjusting entry.
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, logger, "CreateJournalEntryRequest", err)
		return
	}

	logger.Info("Received request to post journal entry", slog.Int("line_count", len(req.Lines)))
	entry, err := h.postingService.PostManual(c.Request.Context(), req.ToPostingRequest())
	if err != nil {
		respondError(c, logger, err, "Failed to post journal entry")
		return
	}

	logger.Info("Journal entry posted", slog.Int64("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, logger, "ListEntriesParams", err)
		return
	}

	page, err := h.ledgerService.QueryEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID, ok := parseID(c, logger, "id")
	if !ok {
		return
	}

	entry, err := h.ledgerService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, logger.With(slog.Int64("entry_id", entryID)), err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteEntry removes a manual entry. Automatic entries answer 409.
func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID, ok := parseID(c, logger, "id")
	if !ok {
		return
	}

	logger = logger.With(slog.Int64("entry_id", entryID))
	if err := h.ledgerService.DeleteEntry(c.Request.Context(), entryID); err != nil {
		respondError(c, logger, err, "Failed to delete journal entry")
		return
	}
	logger.Info("Journal entry deleted")
	c.Status(http.StatusNoContent)
}
