package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"github.com/Zxcchinii/ProjetWeb/internal/auth"
	"github.com/Zxcchinii/ProjetWeb/internal/errors"
	"github.com/Zxcchinii/ProjetWeb/internal/handler"
	"github.com/Zxcchinii/ProjetWeb/internal/model"
	"github.com/Zxcchinii/ProjetWeb/internal/repository"
)

// CustomValidator wraps go-playground validator for echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the given struct.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Account     *handler.AccountHandler
	Transfer    *handler.TransferHandler
	Transaction *handler.TransactionHandler
	Card        *handler.CardHandler
	Admin       *handler.AdminHandler
}

// Register sets up middleware and all API routes.
func Register(e *echo.Echo, h Handlers, jwtService *auth.JWTService, userRepo repository.UserRepository) {
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public auth routes.
	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.POST("/logout", h.Auth.Logout)

	// Everything below requires a valid access token. The claims are stored
	// under the "user" context key as *auth.Claims.
	secured := api.Group("")
	secured.Use(echojwt.WithConfig(echojwt.Config{
		ContextKey: auth.ContextKeyUser,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateToken(tokenString)
		},
	}))

	secured.GET("/auth/me", h.Auth.Me)

	secured.GET("/accounts", h.Account.ListAccounts)
	secured.POST("/accounts", h.Account.CreateAccount)
	secured.GET("/accounts/:id", h.Account.GetAccount)
	secured.DELETE("/accounts/:id", h.Account.DeleteAccount)

	secured.GET("/transactions", h.Transaction.ListTransactions)
	secured.POST("/transactions", h.Transfer.CreateTransfer)

	secured.GET("/cards", h.Card.ListCards)
	secured.POST("/cards", h.Card.IssueCard)
	secured.PUT("/cards/:id/status", h.Card.UpdateStatus)
	secured.PUT("/cards/:id/limit", h.Card.UpdateDailyLimit)
	secured.DELETE("/cards/:id", h.Card.DeleteCard)

	// Back office. Employees get reads and card operations; money movement
	// and user management stay admin only.
	backOffice := secured.Group("/admin", RequireRole(userRepo, model.RoleEmployee, model.RoleAdmin))
	backOffice.GET("/dashboard", h.Admin.Dashboard)
	backOffice.GET("/users", h.Admin.ListUsers)
	backOffice.GET("/users/:id", h.Admin.GetUser)
	backOffice.GET("/accounts", h.Admin.ListAccounts)
	backOffice.GET("/accounts/:id", h.Admin.GetAccount)
	backOffice.GET("/transactions", h.Admin.ListTransactions)
	backOffice.GET("/cards", h.Admin.ListCards)
	backOffice.PUT("/cards/:id/status", h.Admin.UpdateCardStatus)
	backOffice.PUT("/cards/:id/limit", h.Admin.UpdateCardDailyLimit)
	backOffice.DELETE("/cards/:id", h.Admin.DeleteCard)

	adminOnly := secured.Group("/admin", RequireRole(userRepo, model.RoleAdmin))
	adminOnly.PUT("/users/:id/promote", h.Admin.PromoteUser)
	adminOnly.DELETE("/users/:id", h.Admin.DeleteUser)
	adminOnly.POST("/accounts/:id/credit", h.Admin.CreditAccount)
	adminOnly.POST("/accounts/:id/debit", h.Admin.DebitAccount)
	adminOnly.DELETE("/accounts/:id", h.Admin.DeleteAccount)
	adminOnly.PUT("/transactions/:id/cancel", h.Admin.CancelTransaction)
}

// RequireRole loads the caller and checks their current role against the
// allowed set. The role in the token is not trusted; a demoted or deleted
// user is rejected even while their token is still valid.
func RequireRole(userRepo repository.UserRepository, roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := auth.ClaimsFromContext(c)
			if err != nil {
				httpErr := errors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			user, err := userRepo.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					httpErr := errors.MapErrorToHTTP(errors.ErrUnauthenticated)
					return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
				}
				return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
					Error: "internal server error",
					Code:  "INTERNAL_ERROR",
				})
			}

			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}

			httpErr := errors.MapErrorToHTTP(errors.ErrUnauthorized)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
	}
}
