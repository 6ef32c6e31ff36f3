package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Zxcchinii/ProjetWeb/internal/auth"
	"github.com/Zxcchinii/ProjetWeb/internal/errors"
	"github.com/Zxcchinii/ProjetWeb/internal/model"
	"github.com/Zxcchinii/ProjetWeb/internal/service"
)

// CardHandler handles customer-facing card endpoints.
type CardHandler struct {
	cardService service.CardService
}

// NewCardHandler creates a new card handler.
func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// IssueCardRequest represents a card issuance request. The PIN is hashed on
// receipt and never returned.
type IssueCardRequest struct {
	AccountID uint   `json:"account_id" validate:"required"`
	CardType  string `json:"card_type" validate:"required,oneof=visa mastercard amex"`
	Pin       string `json:"pin" validate:"required,len=4,numeric"`
}

// UpdateCardStatusRequest represents a card status change request.
type UpdateCardStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=inactive active blocked"`
}

// UpdateCardLimitRequest represents a daily limit change request.
type UpdateCardLimitRequest struct {
	DailyLimit string `json:"daily_limit" validate:"required"`
}

// ListCards godoc
// @Summary List the caller's cards
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Card
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cards [get]
func (h *CardHandler) ListCards(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return domainError(err)
	}

	cards, err := h.cardService.ListCards(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, cards)
}

// IssueCard godoc
// @Summary Issue a new card
// @Description Creates an inactive card on one of the caller's accounts.
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body IssueCardRequest true "Card data"
// @Success 201 {object} model.Card
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cards [post]
func (h *CardHandler) IssueCard(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return domainError(err)
	}

	var req IssueCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	card, err := h.cardService.IssueCard(c.Request().Context(), userID, req.AccountID, model.CardType(req.CardType), req.Pin)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, card)
}

// UpdateStatus godoc
// @Summary Change the status of one of the caller's cards
// @Description Blocked is terminal; a blocked card cannot be reactivated.
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Param request body UpdateCardStatusRequest true "New status"
// @Success 200 {object} model.Card
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cards/{id}/status [put]
func (h *CardHandler) UpdateStatus(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return domainError(err)
	}

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

	card, err := h.cardService.UpdateStatus(c.Request().Context(), userID, cardID, model.CardStatus(req.Status))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, card)
}

// UpdateDailyLimit godoc
// @Summary Change the daily limit of one of the caller's cards
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Param request body UpdateCardLimitRequest true "New daily limit"
// @Success 200 {object} model.Card
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cards/{id}/limit [put]
func (h *CardHandler) UpdateDailyLimit(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return domainError(err)
	}

	cardID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	limit, err := bindDailyLimit(c)
	if err != nil {
		return err
	}

	card, err := h.cardService.UpdateDailyLimit(c.Request().Context(), userID, cardID, limit)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, card)
}

// DeleteCard godoc
// @Summary Destroy one of the caller's cards
// @Tags cards
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cards/{id} [delete]
func (h *CardHandler) DeleteCard(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return domainError(err)
	}

	cardID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.cardService.DeleteCard(c.Request().Context(), userID, cardID); err != nil {
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// bindDailyLimit binds and parses a daily limit body.
func bindDailyLimit(c echo.Context) (decimal.Decimal, error) {
	var req UpdateCardLimitRequest
	if err := c.Bind(&req); err != nil {
		return decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	limit, err := decimal.NewFromString(req.DailyLimit)
	if err != nil {
		return decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid daily limit",
			Code:  "INVALID_LIMIT",
		})
	}
	return limit, nil
}
