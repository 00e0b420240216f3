package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/money_transfer_engine/internal/core/ports/services"
	"github.com/SscSPs/money_transfer_engine/internal/dto"
	"github.com/SscSPs/money_transfer_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 20

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.openAccount)
		accounts.GET("/me", h.getMyAccount)
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/balance", h.getBalance)
		accounts.GET("/:accountID/transactions", h.listTransactions)
	}
}

// requireUsername returns the caller or writes a 401.
func requireUsername(c *gin.Context) (string, bool) {
	username, ok := middleware.GetUsernameFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Username not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{ErrorCode: middleware.ErrorCodeUnauthorized, Message: "Unauthorized"})
	}
	return username, ok
}

// accountIDParam parses the :accountID path segment or writes a 400.
func accountIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("accountID"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{ErrorCode: ErrorCodeInvalidRequest, Message: "Invalid account ID"})
		return 0, false
	}
	return id, true
}

// openAccount godoc
// @Summary Open the caller's account
// @Description Opens an ACTIVE account with the starting balance for the authenticated holder.
// @Tags accounts
// @Produce  json
// @Success 201 {object} dto.AccountResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Holder already has an account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) openAccount(c *gin.Context) {
	username, ok := requireUsername(c)
	if !ok {
		return
	}

	account, err := h.accountService.OpenAccount(c.Request.Context(), username)
	if err != nil {
		respondWithError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account created successfully", slog.Int64("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getMyAccount godoc
// @Summary Get the caller's account
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Caller has no account"
// @Security BearerAuth
// @Router /accounts/me [get]
func (h *accountHandler) getMyAccount(c *gin.Context) {
	username, ok := requireUsername(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByHolder(c.Request.Context(), username)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves details for an account held by the caller
// @Tags accounts
// @Produce  json
// @Param   accountID path int true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Account belongs to another holder"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	username, ok := requireUsername(c)
	if !ok {
		return
	}
	accountID, ok := accountIDParam(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), accountID, username)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getBalance godoc
// @Summary Get an account balance
// @Tags accounts
// @Produce  json
// @Param   accountID path int true "Account ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Account belongs to another holder"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	username, ok := requireUsername(c)
	if !ok {
		return
	}
	accountID, ok := accountIDParam(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), accountID, username)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(account))
}

// listTransactions godoc
// @Summary List transfers of an account
// @Description Returns transfer outcomes involving the account, newest first, using token-based pagination.
// @Tags accounts
// @Produce  json
// @Param   accountID path int true "Account ID"
// @Param   limit query int false "Page size (1-100, default 20)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Account belongs to another holder"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
	username, ok := requireUsername(c)
	if !ok {
		return
	}
	accountID, ok := accountIDParam(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	if params.Limit == 0 {
		params.Limit = defaultHistoryLimit
	}

	records, next, err := h.accountService.ListTransactions(c.Request.Context(), accountID, username, params.Limit, params.NextToken)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(records, next))
}
