package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Zxcchinii/ProjetWeb/internal/auth"
	"github.com/Zxcchinii/ProjetWeb/internal/errors"
	"github.com/Zxcchinii/ProjetWeb/internal/service"
)

// TransferHandler handles transfer endpoints.
type TransferHandler struct {
	transferService service.TransferService
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(transferService service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// TransferRequest represents a transfer request. Accounts are identified by
// account number; the source must belong to the caller.
type TransferRequest struct {
	AccountNumberFrom string `json:"account_number_from" validate:"required"`
	AccountNumberTo   string `json:"account_number_to" validate:"required"`
	Amount            string `json:"amount" validate:"required"`
	Description       string `json:"description" validate:"omitempty,max=255"`
}

// TransferResponse represents a transfer response.
type TransferResponse struct {
	TransactionID uint   `json:"transaction_id"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

// CreateTransfer godoc
// @Summary Transfer funds between two accounts
// @Tags transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransferRequest true "Transfer data"
// @Success 201 {object} TransferResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /transactions [post]
func (h *TransferHandler) CreateTransfer(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return domainError(err)
	}

	var req TransferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid amount",
			Code:  "INVALID_AMOUNT",
		})
	}

	entry, err := h.transferService.Transfer(
		c.Request().Context(),
		userID,
		req.AccountNumberFrom,
		req.AccountNumberTo,
		amount,
		req.Description,
	)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, TransferResponse{
		TransactionID: entry.ID,
		Status:        string(entry.Status),
		Message:       "Transfer completed successfully",
	})
}
