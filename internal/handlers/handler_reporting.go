package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
	"github.com/SscSPs/books_ledger/internal/dto"
	"github.com/SscSPs/books_ledger/internal/export"
	"github.com/SscSPs/books_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	balanceService   portssvc.BalanceSvc
	gstFrequency     domain.FilingFrequency
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService, bs portssvc.BalanceSvc, gstFrequency domain.FilingFrequency) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		balanceService:   bs,
		gstFrequency:     gstFrequency,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, balanceService portssvc.BalanceSvc, gstFrequency domain.FilingFrequency) {
	h := newReportingHandler(reportingService, balanceService, gstFrequency)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/balances", h.getBalances)
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/profit-and-loss", h.getProfitAndLoss)
		reportingGroup.GET("/ar-aging", h.getAging(domain.AgingReceivables))
		reportingGroup.GET("/ap-aging", h.getAging(domain.AgingPayables))
		reportingGroup.GET("/gst", h.getGSTWorksheet)
		reportingGroup.GET("/t2125", h.getT2125Worksheet)
	}
}

// respondReport writes the report as JSON or, with format=xlsx, as a workbook attachment.
func respondReport(c *gin.Context, logger *slog.Logger, format, filename string, report any) {
	if format != dto.FormatXLSX {
		c.JSON(http.StatusOK, report)
		return
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, report); err != nil {
		logger.Error("Failed to write xlsx report", slog.String("report", filename), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func (h *reportingHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.BalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, logger, "BalanceParams", err)
		return
	}

	var (
		balances []domain.AccountBalance
		err      error
	)
	to := time.Now().UTC()
	if params.From != nil {
		if params.To != nil {
			to = *params.To
		}
		balances, err = h.balanceService.BalancesInRange(c.Request.Context(), *params.From, to)
	} else {
		if params.AsOf != nil {
			to = *params.AsOf
		}
		balances, err = h.balanceService.BalancesAt(c.Request.Context(), to)
	}
	if err != nil {
		respondError(c, logger, err, "Failed to compute balances")
		return
	}

	resp := make([]dto.AccountBalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = dto.AccountBalanceResponse{
			AccountID: b.Account.AccountID,
			Code:      b.Account.Code,
			From:      params.From,
			To:        domain.DateOnly(to),
			Balance:   b.Balance,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.AsOfReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, logger, "AsOfReportParams", err)
		return
	}

	logger = logger.With(slog.String("as_of", params.AsOf.Format("2006-01-02")))
	tb, err := h.reportingService.TrialBalance(c.Request.Context(), params.AsOf)
	if err != nil {
		respondError(c, logger, err, "Failed to generate trial balance")
		return
	}
	if !tb.IsBalanced {
		logger.Error("Trial balance does not balance",
			slog.String("total_debit", tb.TotalDebit.String()),
			slog.String("total_credit", tb.TotalCredit.String()))
	}
	respondReport(c, logger, params.Format, "trial-balance", tb)
}

func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.AsOfReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, logger, "AsOfReportParams", err)
		return
	}

	bs, err := h.reportingService.BalanceSheet(c.Request.Context(), params.AsOf)
	if err != nil {
		respondError(c, logger, err, "Failed to generate balance sheet")
		return
	}
	respondReport(c, logger, params.Format, "balance-sheet", bs)
}

func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.RangeReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, logger, "RangeReportParams", err)
		return
	}

	pl, err := h.reportingService.ProfitAndLoss(c.Request.Context(), params.From, params.To)
	if err != nil {
		respondError(c, logger, err, "Failed to generate profit and loss report")
		return
	}
	respondReport(c, logger, params.Format, "profit-and-loss", pl)
}

func (h *reportingHandler) getAging(kind domain.AgingKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("kind", string(kind)))
		var params dto.AsOfReportParams
		if err := c.ShouldBindQuery(&params); err != nil {
			bindFailed(c, logger, "AsOfReportParams", err)
			return
		}

		report, err := h.reportingService.Aging(c.Request.Context(), kind, params.AsOf)
		if err != nil {
			respondError(c, logger, err, "Failed to generate aging report")
			return
		}
		if !report.IsBalanced {
			logger.Warn("Aging total does not tie to the control account",
				slog.String("total", report.Total.String()),
				slog.String("control_balance", report.ControlBalance.String()))
		}
		respondReport(c, logger, params.Format, string(kind)+"-aging", report)
	}
}

// getGSTWorksheet accepts either from/to or periodOf with an optional filing frequency.
func (h *reportingHandler) getGSTWorksheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.GSTWorksheetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, logger, "GSTWorksheetParams", err)
		return
	}

	var from, to time.Time
	switch {
	case params.From != nil && params.To != nil:
		from, to = *params.From, *params.To
	case params.PeriodOf != nil:
		freq := h.gstFrequency
		if params.Frequency != "" {
			freq = domain.FilingFrequency(params.Frequency)
		}
		var err error
		from, to, err = domain.GSTPeriod(*params.PeriodOf, freq)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "either from and to, or periodOf, is required"})
		return
	}

	w, err := h.reportingService.GSTWorksheet(c.Request.Context(), from, to, params.Installments)
	if err != nil {
		respondError(c, logger, err, "Failed to generate GST worksheet")
		return
	}
	respondReport(c, logger, params.Format, "gst34", w)
}

func (h *reportingHandler) getT2125Worksheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.RangeReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, logger, "RangeReportParams", err)
		return
	}

	w, err := h.reportingService.T2125Worksheet(c.Request.Context(), params.From, params.To)
	if err != nil {
		respondError(c, logger, err, "Failed to generate T2125 worksheet")
		return
	}
	respondReport(c, logger, params.Format, "t2125", w)
}
