package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Zxcchinii/ProjetWeb/internal/auth"
	"github.com/Zxcchinii/ProjetWeb/internal/service"
)

// TransactionHandler handles customer-facing journal reads.
type TransactionHandler struct {
	transactionService service.TransactionService
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// ListTransactions godoc
// @Summary List the caller's transactions
// @Description Entries touching any of the caller's accounts, newest first.
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Transaction
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return domainError(err)
	}

	transactions, err := h.transactionService.ListUserTransactions(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, transactions)
}
