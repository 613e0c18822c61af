package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
	"github.com/SscSPs/books_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// apiMiddleware runs in front of every /api/v1 route (e.g. rate limiting).
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiMiddleware ...gin.HandlerFunc,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, apiMiddleware)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	apiMiddleware []gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1", apiMiddleware...)

	registerAccountRoutes(v1, service.Account, service.Balance)
	registerJournalRoutes(v1, service.Ledger, service.Posting)
	registerPostingRoutes(v1, service.Posting)
	registerReportingRoutes(v1, service.Reporting, service.Balance, cfg.GSTFilingFrequency)
	registerBackfillRoutes(v1, service.Backfill)
}
