package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oriain86/Trading-Platform-Application/internal/config"
	"github.com/oriain86/Trading-Platform-Application/internal/controllers"
	"github.com/oriain86/Trading-Platform-Application/internal/middleware"
	"github.com/oriain86/Trading-Platform-Application/internal/services"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Coin       *controllers.CoinController
	Order      *controllers.OrderController
	Asset      *controllers.AssetController
	Wallet     *controllers.WalletController
	Withdrawal *controllers.WithdrawalController
	Watchlist  *controllers.WatchlistController
	Payment    *controllers.PaymentController
	Health     *controllers.HealthController
}

// Setup builds the gin engine with all middleware and routes mounted.
func Setup(ctrl *Controllers, tokenService services.TokenService, cfg config.ServerConfig) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogging())
	engine.Use(middleware.Metrics())
	engine.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Operational endpoints.
	engine.GET("/health", ctrl.Health.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public endpoints.
	auth := engine.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
	}

	coins := engine.Group("/coins")
	{
		coins.GET("", ctrl.Coin.GetCoinList)
		coins.GET("/top50", ctrl.Coin.GetTop50Coins)
		coins.GET("/search", ctrl.Coin.SearchCoin)
		coins.GET("/:coinId", ctrl.Coin.GetCoinDetails)
		coins.GET("/:coinId/chart", ctrl.Coin.GetMarketChart)
	}

	// Authenticated endpoints.
	api := engine.Group("/api", middleware.AuthMiddleware(tokenService))
	{
		api.GET("/users/profile", ctrl.User.GetProfile)

		orders := api.Group("/orders")
		{
			orders.POST("/pay", ctrl.Order.PayOrder)
			orders.GET("", ctrl.Order.GetAllOrders)
			orders.GET("/:orderId", ctrl.Order.GetOrderByID)
			orders.PUT("/:orderId/cancel", ctrl.Order.CancelOrder)
		}

		assets := api.Group("/assets")
		{
			assets.GET("", ctrl.Asset.GetUserAssets)
			assets.GET("/:assetId", ctrl.Asset.GetAssetByID)
			assets.GET("/coin/:coinId/user", ctrl.Asset.GetAssetByCoin)
		}

		wallet := api.Group("/wallet")
		{
			wallet.GET("", ctrl.Wallet.GetUserWallet)
			wallet.GET("/transactions", ctrl.Wallet.GetTransactions)
			wallet.PUT("/deposit/:paymentOrderId", ctrl.Wallet.CompleteDeposit)
			wallet.PUT("/:walletId/transfer", ctrl.Wallet.Transfer)
			wallet.PUT("/order/:orderId/pay", ctrl.Wallet.PayOrder)
		}

		withdrawal := api.Group("/withdrawal")
		{
			withdrawal.POST("/:amount", ctrl.Withdrawal.RequestWithdrawal)
			withdrawal.GET("", ctrl.Withdrawal.GetWithdrawalHistory)
		}

		watchlist := api.Group("/watchlist")
		{
			watchlist.GET("", ctrl.Watchlist.GetUserWatchlist)
			watchlist.PATCH("/add/coin/:coinId", ctrl.Watchlist.AddCoin)
		}

		payment := api.Group("/payment")
		{
			payment.POST("/:paymentMethod/amount/:amount", ctrl.Payment.CreatePayment)
		}

		admin := api.Group("/admin", middleware.AdminOnlyMiddleware())
		{
			admin.GET("/withdrawal", ctrl.Withdrawal.GetAllWithdrawalRequests)
			admin.PATCH("/withdrawal/:withdrawalId/proceed/:accept", ctrl.Withdrawal.ProceedWithdrawal)
		}
	}

	return engine
}
