package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"clubsphere-server/internal/client"
	"clubsphere-server/internal/config"
	"clubsphere-server/internal/repository"
	"clubsphere-server/internal/server"
	"clubsphere-server/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	setupLogger(&cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	mongoClient, db, err := client.InitMongoClient(ctx, &cfg.Mongo)
	cancel()
	if err != nil {
		slog.Error("mongodb init failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			slog.Error("mongodb disconnect failed", "error", err)
		}
	}()

	stripeClient := client.NewStripeClient(&cfg.Stripe)
	txnRunner := client.NewTxnRunner(mongoClient, cfg.Mongo.UseTransactions)

	paymentRepo := repository.NewPaymentRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	clubRepo := repository.NewClubRepository(db)
	eventRepo := repository.NewEventRepository(db)
	registrationRepo := repository.NewEventRegistrationRepository(db)
	userRepo := repository.NewUserRepository(db)

	paymentService := service.NewPaymentService(
		stripeClient, txnRunner, cfg.BaseURL, cfg.Stripe.Currency,
		paymentRepo, membershipRepo, clubRepo,
	)
	membershipService := service.NewMembershipService(membershipRepo, clubRepo)
	eventService := service.NewEventService(eventRepo, registrationRepo)
	clubService := service.NewClubService(clubRepo)
	userService := service.NewUserService(userRepo)

	srv := server.NewServer(paymentService, membershipService, eventService, clubService, userService)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	slog.Info("starting HTTP server", "addr", serverAddr, "environment", cfg.Environment.Name)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	slog.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
}

func setupLogger(cfg *config.Log) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}
