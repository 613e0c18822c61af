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

type backfillHandler struct {
	backfillService portssvc.BackfillSvc
}

func registerBackfillRoutes(rg *gin.RouterGroup, backfillService portssvc.BackfillSvc) {
	h := &backfillHandler{backfillService: backfillService}
	rg.POST("/backfill", h.runBackfill)
}

// runBackfill runs synchronously. A run already in progress answers 423.
func (h *backfillHandler) runBackfill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BackfillRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFailed(c, logger, "BackfillRequest", err)
			return
		}
	}

	result, err := h.backfillService.Run(c.Request.Context(), domain.BackfillOptions{DryRun: req.DryRun})
	if err != nil {
		respondError(c, logger, err, "Backfill run failed")
		return
	}
	logger.Info("Backfill run finished",
		slog.String("run_id", result.RunID),
		slog.Int("created", result.Created),
		slog.Int("failures", len(result.Failures)))
	c.JSON(http.StatusOK, result)
}
