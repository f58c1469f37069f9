package main

import (
	"context"
	"log"
	"time"

	"github.com/famcare/auth-service/config"
	"github.com/famcare/auth-service/db"
	"github.com/famcare/auth-service/internal/auth/handler"
	repo "github.com/famcare/auth-service/internal/auth/repository/postgres"
	"github.com/famcare/auth-service/internal/auth/service"
	"github.com/famcare/auth-service/internal/mailer"
	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if err := db.Migrate(cfg.DBURL); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer dbPool.Close()

	accountRepo := repo.NewAccountRepository(dbPool)
	refreshTokenRepo := repo.NewRefreshTokenRepository(dbPool)
	ticketRepo := repo.NewTicketRepository(dbPool)

	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.PreviousTokenSecrets, cfg.AccessExpiryMin)
	sessionService := service.NewSessionService(accountRepo, refreshTokenRepo, tokenService, cfg.RefreshExpiryMin)
	ticketService := service.NewTicketService(ticketRepo)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)
	authService := service.NewAuthService(accountRepo, sessionService, ticketService, tokenService, smtpMailer, cfg)
	authHandler := handler.NewAuthHandler(authService, tokenService)

	sweeper := service.NewSweeper(refreshTokenRepo, ticketRepo, time.Duration(cfg.SweepIntervalMin)*time.Minute)
	go sweeper.Run(ctx)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
