package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Zxcchinii/ProjetWeb/internal/errors"
	"github.com/Zxcchinii/ProjetWeb/internal/model"
	"github.com/Zxcchinii/ProjetWeb/internal/service"
)

// AdminHandler handles back office endpoints.
type AdminHandler struct {
	adminService   service.AdminService
	userService    service.UserService
	accountService service.AccountService
	cardService    service.CardService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	adminService service.AdminService,
	userService service.UserService,
	accountService service.AccountService,
	cardService service.CardService,
) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		userService:    userService,
		accountService: accountService,
		cardService:    cardService,
	}
}

// AdjustmentRequest represents an administrative credit or debit request.
type AdjustmentRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// Dashboard godoc
// @Summary Back office dashboard counters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.adminService.GetDashboardStats(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get any user with their accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.GetUserWithAccounts(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// PromoteUser godoc
// @Summary Promote a user to admin
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users/{id}/promote [put]
func (h *AdminHandler) PromoteUser(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.PromoteUser(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete any user
// @Tags admin
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.DeleteUser(c.Request().Context(), userID); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAccounts godoc
// @Summary List all accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Account
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/accounts [get]
func (h *AdminHandler) ListAccounts(c echo.Context) error {
	accounts, err := h.accountService.AdminListAccounts(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, accounts)
}

// GetAccount godoc
// @Summary Get any account
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} model.Account
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/accounts/{id} [get]
func (h *AdminHandler) GetAccount(c echo.Context) error {
	accountID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	account, err := h.accountService.AdminGetAccount(c.Request().Context(), accountID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, account)
}

// CreditAccount godoc
// @Summary Credit any account
// @Description Journals an administrative deposit.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param request body AdjustmentRequest true "Amount"
// @Success 201 {object} model.Transaction
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/accounts/{id}/credit [post]
func (h *AdminHandler) CreditAccount(c echo.Context) error {
	accountID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	amount, err := bindAdjustmentAmount(c)
	if err != nil {
		return err
	}

	entry, err := h.adminService.Credit(c.Request().Context(), accountID, amount)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// DebitAccount godoc
// @Summary Debit any account
// @Description Journals an administrative withdrawal. Balances never go negative.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param request body AdjustmentRequest true "Amount"
// @Success 201 {object} model.Transaction
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/accounts/{id}/debit [post]
func (h *AdminHandler) DebitAccount(c echo.Context) error {
	accountID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	amount, err := bindAdjustmentAmount(c)
	if err != nil {
		return err
	}

	entry, err := h.adminService.Debit(c.Request().Context(), accountID, amount)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// DeleteAccount godoc
// @Summary Delete any account
// @Description Fails while journal entries still reference the account.
// @Tags admin
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/accounts/{id} [delete]
func (h *AdminHandler) DeleteAccount(c echo.Context) error {
	accountID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.accountService.AdminDeleteAccount(c.Request().Context(), accountID); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTransactions godoc
// @Summary List the newest journal entries
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Transaction
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/transactions [get]
func (h *AdminHandler) ListTransactions(c echo.Context) error {
	transactions, err := h.adminService.ListTransactions(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, transactions)
}

// CancelTransaction godoc
// @Summary Cancel a journal entry and reverse its balance effect
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} model.Transaction
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/transactions/{id}/cancel [put]
func (h *AdminHandler) CancelTransaction(c echo.Context) error {
	transactionID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	audit, err := h.adminService.CancelTransaction(c.Request().Context(), transactionID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, audit)
}

// ListCards godoc
// @Summary List all cards
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Card
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/cards [get]
func (h *AdminHandler) ListCards(c echo.Context) error {
	cards, err := h.cardService.AdminListCards(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, cards)
}

// UpdateCardStatus godoc
// @Summary Change the status of any card
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Param request body UpdateCardStatusRequest true "New status"
// @Success 200 {object} model.Card
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/cards/{id}/status [put]
func (h *AdminHandler) UpdateCardStatus(c echo.Context) error {
	cardID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateCardStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	card, err := h.cardService.AdminUpdateStatus(c.Request().Context(), cardID, model.CardStatus(req.Status))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, card)
}

// UpdateCardDailyLimit godoc
// @Summary Change the daily limit of any card
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Param request body UpdateCardLimitRequest true "New daily limit"
// @Success 200 {object} model.Card
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/cards/{id}/limit [put]
func (h *AdminHandler) UpdateCardDailyLimit(c echo.Context) error {
	cardID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	limit, err := bindDailyLimit(c)
	if err != nil {
		return err
	}

	card, err := h.cardService.AdminUpdateDailyLimit(c.Request().Context(), cardID, limit)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, card)
}

// DeleteCard godoc
// @Summary Delete any card
// @Tags admin
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/cards/{id} [delete]
func (h *AdminHandler) DeleteCard(c echo.Context) error {
	cardID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.cardService.AdminDeleteCard(c.Request().Context(), cardID); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// bindAdjustmentAmount binds and parses an adjustment amount body.
func bindAdjustmentAmount(c echo.Context) (decimal.Decimal, error) {
	var req AdjustmentRequest
	if err := c.Bind(&req); err != nil {
		return decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid amount",
			Code:  "INVALID_AMOUNT",
		})
	}
	return amount, nil
}
