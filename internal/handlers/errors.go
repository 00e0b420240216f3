package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/money_transfer_engine/internal/apperrors"
	"github.com/SscSPs/money_transfer_engine/internal/dto"
	"github.com/SscSPs/money_transfer_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Client-facing error codes.
const (
	ErrorCodeAccountNotFound     = "ACC-404"
	ErrorCodeAccountNotActive    = "ACC-403"
	ErrorCodeAccountExists       = "ACC-409"
	ErrorCodeInsufficientBalance = "TRX-400"
	ErrorCodeTransferNotFound    = "TRX-404"
	ErrorCodeInvalidRequest      = "REQ-400"
	ErrorCodeForbidden           = "AUTH-403"
	ErrorCodeUnavailable         = "SYS-503"
	ErrorCodeInternal            = "SYS-500"
)

type errorMapping struct {
	status  int
	code    string
	message string // fixed message; empty means the error text is safe to return
}

// mapError picks the response for err. Order matters: specific sentinels wrap general ones.
func mapError(err error) errorMapping {
	switch {
	case errors.Is(err, apperrors.ErrAccountNotFound):
		return errorMapping{http.StatusNotFound, ErrorCodeAccountNotFound, "Account not found"}
	case errors.Is(err, apperrors.ErrNotFound):
		return errorMapping{http.StatusNotFound, ErrorCodeTransferNotFound, "Transfer not found"}
	case errors.Is(err, apperrors.ErrAccountNotActive):
		return errorMapping{http.StatusForbidden, ErrorCodeAccountNotActive, ""}
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		return errorMapping{http.StatusBadRequest, ErrorCodeInsufficientBalance, ""}
	case errors.Is(err, apperrors.ErrValidation):
		return errorMapping{http.StatusBadRequest, ErrorCodeInvalidRequest, ""}
	case errors.Is(err, apperrors.ErrForbidden):
		return errorMapping{http.StatusForbidden, ErrorCodeForbidden, "Forbidden"}
	case errors.Is(err, apperrors.ErrDuplicate):
		return errorMapping{http.StatusConflict, ErrorCodeAccountExists, "An account already exists for this holder"}
	case errors.Is(err, apperrors.ErrTransient):
		return errorMapping{http.StatusServiceUnavailable, ErrorCodeUnavailable, "Service temporarily unavailable, retry with the same idempotency key"}
	default:
		return errorMapping{http.StatusInternalServerError, ErrorCodeInternal, "Internal server error"}
	}
}

// respondWithError writes the error body for err.
func respondWithError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	m := mapError(err)

	body := dto.ErrorResponse{ErrorCode: m.code, Message: m.message}
	if body.Message == "" {
		body.Message = err.Error()
	}

	var failed *apperrors.TransferFailedError
	if errors.As(err, &failed) {
		txnID := failed.Record.TransactionID
		body.TransactionID = &txnID
		body.Status = string(failed.Record.Status)
		body.IdempotencyKey = failed.Record.IdempotencyKey
	}

	switch {
	case m.status >= http.StatusInternalServerError:
		logger.Error("Request failed", slog.String("error_code", m.code), slog.String("error", err.Error()))
		if m.status == http.StatusServiceUnavailable {
			c.Header("Retry-After", "1")
		}
	default:
		logger.Warn("Request rejected", slog.String("error_code", m.code), slog.String("reason", err.Error()))
	}
	c.JSON(m.status, body)
}

// respondBindError reports a request that could not be bound or validated.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid request format", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{ErrorCode: ErrorCodeInvalidRequest, Message: "Invalid request format: " + err.Error()})
}
