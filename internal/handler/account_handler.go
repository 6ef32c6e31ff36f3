package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Zxcchinii/ProjetWeb/internal/auth"
	"github.com/Zxcchinii/ProjetWeb/internal/model"
	"github.com/Zxcchinii/ProjetWeb/internal/service"
)

// AccountHandler handles customer-facing account endpoints.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest represents an account creation request.
type CreateAccountRequest struct {
	Type string `json:"type" validate:"required,oneof=courant epargne entreprise"`
}

// ListAccounts godoc
// @Summary List the caller's accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Account
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return domainError(err)
	}

	accounts, err := h.accountService.ListAccounts(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, accounts)
}

// GetAccount godoc
// @Summary Get one of the caller's accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} model.Account
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return domainError(err)
	}

	accountID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	account, err := h.accountService.GetAccount(c.Request().Context(), userID, accountID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, account)
}

// CreateAccount godoc
// @Summary Open a new account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAccountRequest true "Account data"
// @Success 201 {object} model.Account
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return domainError(err)
	}

	var req CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.accountService.CreateAccount(c.Request().Context(), userID, model.AccountType(req.Type))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, account)
}

// DeleteAccount godoc
// @Summary Close one of the caller's accounts
// @Description The balance must be exactly zero.
// @Tags accounts
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return domainError(err)
	}

	accountID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.accountService.DeleteAccount(c.Request().Context(), userID, accountID); err != nil {
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
