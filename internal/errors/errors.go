package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated is returned when no valid caller identity is present.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrUnauthorized is returned when the caller's role is insufficient.
	ErrUnauthorized = errors.New("access denied")
	// ErrAccountNotFound is returned when an account is absent or not owned by the caller.
	ErrAccountNotFound = errors.New("account not found")
	// ErrSourceAccountNotFound is returned when a transfer source account is absent or not owned by the caller.
	ErrSourceAccountNotFound = errors.New("source account not found")
	// ErrDestinationAccountNotFound is returned when a transfer destination account is absent.
	ErrDestinationAccountNotFound = errors.New("destination account not found")
	// ErrCardNotFound is returned when a card is absent or not owned by the caller.
	ErrCardNotFound = errors.New("card not found")
	// ErrTransactionNotFound is returned when a journal entry is absent.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrUserNotFound is returned when a user is absent.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidAmount is returned when an amount is not a positive two-decimal value.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidAccountType is returned when an account type is not in the enumerated set.
	ErrInvalidAccountType = errors.New("invalid account type")
	// ErrInvalidPin is returned when a card PIN is not exactly four digits.
	ErrInvalidPin = errors.New("pin must be exactly 4 digits")
	// ErrInvalidCardType is returned when a card type is not a supported brand.
	ErrInvalidCardType = errors.New("invalid card type")
	// ErrInvalidCardStatus is returned when a card status is not in the enumerated set.
	ErrInvalidCardStatus = errors.New("invalid card status")
	// ErrCardBlocked is returned when attempting to transition a card out of the blocked state.
	ErrCardBlocked = errors.New("card is blocked")
	// ErrInvalidLimit is returned when a daily limit is not a non-negative decimal.
	ErrInvalidLimit = errors.New("invalid daily limit")
	// ErrSelfTransfer is returned when source and destination accounts are the same.
	ErrSelfTransfer = errors.New("destination account must differ from source account")
	// ErrInsufficientFunds is returned when a debit would make a balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientFundsToReverse is returned when a cancellation would make the
	// counterpart account's balance negative.
	ErrInsufficientFundsToReverse = errors.New("insufficient funds to reverse transaction")
	// ErrNonZeroBalance is returned when a user deletes an account whose balance is not zero.
	ErrNonZeroBalance = errors.New("account balance must be zero")
	// ErrHasTransactions is returned when an admin deletes an account referenced by the journal.
	ErrHasTransactions = errors.New("account has transactions")
	// ErrAlreadyCancelled is returned on a duplicate cancellation attempt.
	ErrAlreadyCancelled = errors.New("transaction is already cancelled")
	// ErrNotCancellable is returned when cancelling an entry that never completed.
	ErrNotCancellable = errors.New("transaction is not cancellable")
	// ErrStorageFailure is returned for persistence layer errors, without internal detail.
	ErrStorageFailure = errors.New("storage failure")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors map to a
// generic internal error so storage details never leak to the caller.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusForbidden, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrAccountNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ACCOUNT_NOT_FOUND")
	case errors.Is(err, ErrSourceAccountNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SOURCE_ACCOUNT_NOT_FOUND")
	case errors.Is(err, ErrDestinationAccountNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "DESTINATION_ACCOUNT_NOT_FOUND")
	case errors.Is(err, ErrCardNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CARD_NOT_FOUND")
	case errors.Is(err, ErrTransactionNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TRANSACTION_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	case errors.Is(err, ErrInvalidAccountType):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ACCOUNT_TYPE")
	case errors.Is(err, ErrInvalidPin):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PIN")
	case errors.Is(err, ErrInvalidCardType):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CARD_TYPE")
	case errors.Is(err, ErrInvalidCardStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CARD_STATUS")
	case errors.Is(err, ErrCardBlocked):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CARD_BLOCKED")
	case errors.Is(err, ErrInvalidLimit):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_LIMIT")
	case errors.Is(err, ErrSelfTransfer):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_TRANSFER")
	case errors.Is(err, ErrInsufficientFunds):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INSUFFICIENT_FUNDS")
	case errors.Is(err, ErrInsufficientFundsToReverse):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INSUFFICIENT_FUNDS_TO_REVERSE")
	case errors.Is(err, ErrNonZeroBalance):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NON_ZERO_BALANCE")
	case errors.Is(err, ErrHasTransactions):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "HAS_TRANSACTIONS")
	case errors.Is(err, ErrAlreadyCancelled):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_CANCELLED")
	case errors.Is(err, ErrNotCancellable):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NOT_CANCELLABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
