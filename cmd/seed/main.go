package main

import (
	"context"
	"log"

	"github.com/Zxcchinii/ProjetWeb/internal/auth"
	"github.com/Zxcchinii/ProjetWeb/internal/cache"
	"github.com/Zxcchinii/ProjetWeb/internal/config"
	"github.com/Zxcchinii/ProjetWeb/internal/db"
	"github.com/Zxcchinii/ProjetWeb/internal/model"
	"github.com/Zxcchinii/ProjetWeb/internal/repository"
	"github.com/Zxcchinii/ProjetWeb/internal/service"
)

// Creates the initial back-office operator. Safe to run repeatedly: an
// existing operator is left untouched.
func main() {
	cfg := config.Load()
	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD must be set")
	}

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
	txManager := repository.NewTxManager(gormDB)
	authService := service.NewAuthService(userRepo, txManager, auth.NewJWTService(cfg.JWTSecret), auth.NewTokenStore(cacheClient))

	ctx := context.Background()

	if existing, err := userRepo.FindByEmail(ctx, cfg.AdminEmail); err == nil && existing != nil {
		log.Printf("operator %s already exists, nothing to do", cfg.AdminEmail)
		return
	}

	user, err := authService.Register(ctx, cfg.AdminEmail, cfg.AdminPassword, "Admin", "Operator")
	if err != nil {
		log.Fatalf("failed to create operator: %v", err)
	}

	if err := userRepo.UpdateRole(ctx, user.ID, model.RoleAdmin); err != nil {
		log.Fatalf("failed to grant admin role: %v", err)
	}

	log.Printf("operator %s created", cfg.AdminEmail)
}
