package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
	"github.com/SscSPs/books_ledger/internal/dto"
	"github.com/SscSPs/books_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	balanceService portssvc.BalanceSvc
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, bs portssvc.BalanceSvc) *accountHandler {
	return &accountHandler{
		accountService: as,
		balanceService: bs,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, balanceService portssvc.BalanceSvc) {
	h := newAccountHandler(accountService, balanceService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.POST("/seed", h.seedAccounts)
		accounts.GET("/by-code/:code", h.resolveAccount)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
		accounts.GET("/:id/ledger", h.accountLedger)
		accounts.GET("/:id/balance", h.accountBalance)
	}
}

func parseID(c *gin.Context, logger *slog.Logger, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		logger.Warn("Invalid id in path", slog.String("param", name), slog.String("value", c.Param(name)))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, logger, "CreateAccountRequest", err)
		return
	}

	logger = logger.With(slog.String("code", req.Code))
	logger.Info("Received request to register account", slog.String("account_type", string(req.AccountType)))

	account, err := h.accountService.RegisterAccount(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to register account")
		return
	}

	logger.Info("Account registered", slog.Int64("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, logger, "ListAccountsParams", err)
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), domain.AccountFilter{
		AccountType: domain.AccountType(params.AccountType),
		ActiveOnly:  params.ActiveOnly,
	})
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

func (h *accountHandler) seedAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	created, err := h.accountService.SeedAccounts(c.Request.Context(), domain.DefaultChartOfAccounts())
	if err != nil {
		respondError(c, logger, err, "Failed to seed chart of accounts")
		return
	}
	logger.Info("Chart of accounts seeded", slog.Int("created", created))
	c.JSON(http.StatusOK, dto.SeedAccountsResponse{Created: created})
}

func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := parseID(c, logger, "id")
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger.With(slog.Int64("account_id", accountID)), err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) resolveAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	account, err := h.accountService.ResolveAccount(c.Request.Context(), code)
	if err != nil {
		respondError(c, logger.With(slog.String("code", code)), err, "Failed to resolve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := parseID(c, logger, "id")
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, logger, "UpdateAccountRequest", err)
		return
	}

	logger = logger.With(slog.Int64("account_id", accountID))
	account, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update account")
		return
	}
	logger.Info("Account updated")
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := parseID(c, logger, "id")
	if !ok {
		return
	}

	logger = logger.With(slog.Int64("account_id", accountID))
	deactivated, err := h.accountService.DeleteAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to delete account")
		return
	}
	logger.Info("Account deleted", slog.Bool("deactivated", deactivated))
	c.JSON(http.StatusOK, dto.DeleteAccountResponse{AccountID: accountID, Deactivated: deactivated})
}

func (h *accountHandler) accountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := parseID(c, logger, "id")
	if !ok {
		return
	}
	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, logger, "ListLedgerParams", err)
		return
	}

	page, err := h.accountService.AccountLedger(c.Request.Context(), accountID, params)
	if err != nil {
		respondError(c, logger.With(slog.Int64("account_id", accountID)), err, "Failed to list account ledger")
		return
	}
	c.JSON(http.StatusOK, page)
}

// accountBalance returns the balance as of a date, or the activity within [from, to] when from is given.
func (h *accountHandler) accountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := parseID(c, logger, "id")
	if !ok {
		return
	}
	var params dto.BalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, logger, "BalanceParams", err)
		return
	}

	ctx := c.Request.Context()
	account, err := h.accountService.GetAccountByID(ctx, accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}

	resp := dto.AccountBalanceResponse{AccountID: account.AccountID, Code: account.Code}
	switch {
	case params.From != nil:
		resp.From = params.From
		resp.To = time.Now().UTC()
		if params.To != nil {
			resp.To = *params.To
		}
		resp.Balance, err = h.balanceService.BalanceInRange(ctx, accountID, *params.From, resp.To)
	default:
		resp.To = time.Now().UTC()
		if params.AsOf != nil {
			resp.To = *params.AsOf
		}
		resp.Balance, err = h.balanceService.BalanceAt(ctx, accountID, resp.To)
	}
	if err != nil {
		respondError(c, logger, err, "Failed to compute balance")
		return
	}
	resp.To = domain.DateOnly(resp.To)
	c.JSON(http.StatusOK, resp)
}
