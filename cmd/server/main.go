package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/Zxcchinii/ProjetWeb/internal/auth"
	"github.com/Zxcchinii/ProjetWeb/internal/cache"
	"github.com/Zxcchinii/ProjetWeb/internal/config"
	"github.com/Zxcchinii/ProjetWeb/internal/db"
	"github.com/Zxcchinii/ProjetWeb/internal/handler"
	"github.com/Zxcchinii/ProjetWeb/internal/model"
	"github.com/Zxcchinii/ProjetWeb/internal/repository"
	"github.com/Zxcchinii/ProjetWeb/internal/router"
	"github.com/Zxcchinii/ProjetWeb/internal/service"
)

// @title Banque Rupt API
// @version 1.0
// @description Simulated retail banking API: accounts, transfers, cards and back office.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Account{},
		&model.Card{},
		&model.Transaction{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	userRepo := repository.NewUserRepository(gormDB)
	accountRepo := repository.NewAccountRepository(gormDB)
	cardRepo := repository.NewCardRepository(gormDB)
	transactionRepo := repository.NewTransactionRepository(gormDB)
	txManager := repository.NewTxManager(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	authService := service.NewAuthService(userRepo, txManager, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	accountService := service.NewAccountService(accountRepo, txManager, cacheClient)
	transferService := service.NewTransferService(txManager, cacheClient)
	transactionService := service.NewTransactionService(accountRepo, transactionRepo)
	cardService := service.NewCardService(cardRepo, txManager)
	adminService := service.NewAdminService(userRepo, accountRepo, transactionRepo, txManager, cacheClient)

	e := echo.New()
	router.Register(e, router.Handlers{
		Auth:        handler.NewAuthHandler(authService, userService),
		Account:     handler.NewAccountHandler(accountService),
		Transfer:    handler.NewTransferHandler(transferService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Card:        handler.NewCardHandler(cardService),
		Admin:       handler.NewAdminHandler(adminService, userService, accountService, cardService),
	}, jwtService, userRepo)

	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
