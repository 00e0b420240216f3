package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/money_transfer_engine/internal/core/ports/services"
	"github.com/SscSPs/money_transfer_engine/internal/dto"
	"github.com/SscSPs/money_transfer_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transferHandler handles HTTP requests related to transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: ts}
}

// RegisterTransferRoutes registers routes related to transfers.
// createMiddleware runs only in front of transfer creation.
func RegisterTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade, createMiddleware ...gin.HandlerFunc) {
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		chain := append(append([]gin.HandlerFunc{}, createMiddleware...), h.createTransfer)
		transfers.POST("", chain...)
		transfers.GET("/:idempotencyKey", h.getTransfer)
	}
}

// ResolveIdempotencyKey picks the body key, then the header key.
// An empty result asks the transfer service to generate one.
func ResolveIdempotencyKey(bodyKey, headerKey string) string {
	if strings.TrimSpace(bodyKey) != "" {
		return bodyKey
	}
	if strings.TrimSpace(headerKey) != "" {
		return headerKey
	}
	return ""
}

// createTransfer godoc
// @Summary Transfer money between two accounts
// @Description Moves an amount from the caller's account to another account exactly once per idempotency key.
// @Description Repeating a request with the same key returns the stored outcome without executing it again.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Param   X-Idempotency-Key header string false "Idempotency key used when the body has none"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request (REQ-400) or insufficient balance (TRX-400)"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Account not active (ACC-403)"
// @Failure 404 {object} dto.ErrorResponse "Account not found (ACC-404)"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 503 {object} dto.ErrorResponse "Transient failure, safe to retry with the same key"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	username, ok := middleware.GetUsernameFromContext(c)
	if !ok {
		logger.Error("Username not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{ErrorCode: middleware.ErrorCodeUnauthorized, Message: "Unauthorized"})
		return
	}

	key := ResolveIdempotencyKey(req.IdempotencyKey, c.GetHeader(dto.IdempotencyKeyHeader))
	record, err := h.transferService.Transfer(c.Request.Context(), req.ToCommand(key), username)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Transfer request served",
		slog.String("idempotency_key", record.IdempotencyKey),
		slog.Int64("transaction_id", record.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransferResponse(*record))
}

// getTransfer godoc
// @Summary Get a transfer outcome by idempotency key
// @Description Returns the committed outcome for a key. The caller must hold the source or destination account.
// @Tags transfers
// @Produce  json
// @Param   idempotencyKey path string true "Idempotency key"
// @Success 200 {object} dto.TransferRecordResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a party to the transfer"
// @Failure 404 {object} dto.ErrorResponse "Transfer not found"
// @Security BearerAuth
// @Router /transfers/{idempotencyKey} [get]
func (h *transferHandler) getTransfer(c *gin.Context) {
	username, ok := middleware.GetUsernameFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{ErrorCode: middleware.ErrorCodeUnauthorized, Message: "Unauthorized"})
		return
	}

	record, err := h.transferService.GetTransfer(c.Request.Context(), c.Param("idempotencyKey"), username)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferRecordResponse(*record))
}
