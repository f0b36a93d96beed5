package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oriain86/Trading-Platform-Application/internal/cache"
	"github.com/oriain86/Trading-Platform-Application/internal/clients"
	"github.com/oriain86/Trading-Platform-Application/internal/config"
	"github.com/oriain86/Trading-Platform-Application/internal/controllers"
	"github.com/oriain86/Trading-Platform-Application/internal/messaging"
	"github.com/oriain86/Trading-Platform-Application/internal/monitoring"
	"github.com/oriain86/Trading-Platform-Application/internal/repositories"
	"github.com/oriain86/Trading-Platform-Application/internal/routes"
	"github.com/oriain86/Trading-Platform-Application/internal/scheduler"
	"github.com/oriain86/Trading-Platform-Application/internal/services"
	"github.com/oriain86/Trading-Platform-Application/pkg/database"
	"github.com/oriain86/Trading-Platform-Application/pkg/logger"
)

func main() {
	// Missing .env is fine; the environment may be set by the container.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Logging)

	db, err := database.Connect(cfg.Database, cfg.Server.Debug)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		logrus.Fatalf("Failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	// Repositories.
	userRepo := repositories.NewUserRepository(db)
	coinRepo := repositories.NewCoinRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	transactionRepo := repositories.NewWalletTransactionRepository(db)
	assetRepo := repositories.NewAssetRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	withdrawalRepo := repositories.NewWithdrawalRepository(db)
	watchlistRepo := repositories.NewWatchlistRepository(db)
	paymentOrderRepo := repositories.NewPaymentOrderRepository(db)

	// External clients and infrastructure.
	marketClient := clients.NewMarketClient(cfg.Market)
	marketCache := cache.NewMarketCache(redisClient, cfg.Redis.MarketTTL)
	razorpayClient := clients.NewRazorpayClient(cfg.Payment)
	stripeClient := clients.NewStripeClient(cfg.Payment)
	txManager := database.NewTxManager(db)

	var publisher services.EventPublisher
	if cfg.RabbitMQ.Enabled {
		amqpPublisher, err := messaging.NewPublisher(cfg.RabbitMQ)
		if err != nil {
			logrus.Fatalf("Failed to initialize event publisher: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	} else {
		logrus.Warn("message broker disabled, events will not be published")
		publisher = messaging.NewNoopPublisher()
	}

	// Services.
	tokenService := services.NewTokenService(cfg.Auth)
	authService := services.NewAuthService(userRepo, tokenService)
	userService := services.NewUserService(userRepo)
	coinService := services.NewCoinService(coinRepo, marketClient, marketCache)
	transactionService := services.NewWalletTransactionService(transactionRepo)
	walletService := services.NewWalletService(walletRepo, transactionService)
	assetService := services.NewAssetService(assetRepo)
	orderService := services.NewOrderService(orderRepo, assetService, walletService, txManager, publisher)
	withdrawalService := services.NewWithdrawalService(withdrawalRepo)
	watchlistService := services.NewWatchlistService(watchlistRepo)
	paymentService := services.NewPaymentService(paymentOrderRepo, razorpayClient, stripeClient)

	// Health checks.
	healthChecker := monitoring.NewHealthChecker()
	healthChecker.RegisterCheck("database", func(ctx context.Context) error {
		return database.Ping(db)
	})
	healthChecker.RegisterCheck("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})

	// Controllers and routes.
	ctrl := &routes.Controllers{
		Auth:       controllers.NewAuthController(authService),
		User:       controllers.NewUserController(userService),
		Coin:       controllers.NewCoinController(coinService),
		Order:      controllers.NewOrderController(orderService, coinService, userService),
		Asset:      controllers.NewAssetController(assetService, userService),
		Wallet:     controllers.NewWalletController(walletService, transactionService, paymentService, orderService, userService),
		Withdrawal: controllers.NewWithdrawalController(withdrawalService, walletService, transactionService, userService, publisher),
		Watchlist:  controllers.NewWatchlistController(watchlistService, coinService, userService),
		Payment:    controllers.NewPaymentController(paymentService, userService),
		Health:     controllers.NewHealthController(healthChecker),
	}
	engine := routes.Setup(ctrl, tokenService, cfg.Server)

	// Background price refresh.
	priceScheduler := scheduler.New(coinService, cfg.Market.RefreshPages)
	if err := priceScheduler.Start(cfg.Market.RefreshSchedule); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer priceScheduler.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logrus.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Forced shutdown: %v", err)
	}
}
