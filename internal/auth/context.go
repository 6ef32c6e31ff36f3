package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/Zxcchinii/ProjetWeb/internal/errors"
)

// ContextKeyUser is where the JWT middleware stores the validated claims.
const ContextKeyUser = "user"

// ClaimsFromContext returns the validated claims of the current request.
func ClaimsFromContext(c echo.Context) (*Claims, error) {
	claims, ok := c.Get(ContextKeyUser).(*Claims)
	if !ok || claims == nil {
		return nil, errors.ErrUnauthenticated
	}
	return claims, nil
}

// UserIDFromContext returns the verified caller identifier. Every operation
// below the transport layer takes this as a precondition.
func UserIDFromContext(c echo.Context) (uint, error) {
	claims, err := ClaimsFromContext(c)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
