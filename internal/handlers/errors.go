package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusFor maps the error taxonomy onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrImmutable):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnbalanced),
		errors.Is(err, apperrors.ErrMapping),
		errors.Is(err, apperrors.ErrNotPostable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrLocked):
		return http.StatusLocked
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes the mapped status. Internal failures get a generic message.
func respondError(c *gin.Context, logger *slog.Logger, err error, failure string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(failure, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": failure})
		return
	}
	logger.Warn(failure, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}

func bindFailed(c *gin.Context, logger *slog.Logger, what string, err error) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}
