package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"solana-casino-backend/internal/config"
	"solana-casino-backend/internal/games"
	"solana-casino-backend/internal/handlers"
	"solana-casino-backend/internal/logger"
	"solana-casino-backend/internal/middleware"
	"solana-casino-backend/internal/services"
	"solana-casino-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	db, err := store.Open(cfg.DatabaseDSN)
	if err != nil {
		zlog.Fatal("connect to mysql", zap.Error(err))
	}
	defer db.Close()

	st := store.New(db)
	if err := st.EnsureSchema(context.Background()); err != nil {
		zlog.Fatal("ensure schema", zap.Error(err))
	}

	cache, err := services.NewCache(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		zlog.Fatal("connect to redis", zap.Error(err))
	}
	defer cache.Close()

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTExpiryMin)
	registry := games.NewRegistry(games.Config{
		HouseEdge:     cfg.HouseEdge,
		CoinHeadsOver: cfg.CoinHeadsOver,
		CoinTailsMax:  cfg.CoinTailsMax,
		OptionsPayout: cfg.OptionsPayout,
	})
	oracle := services.NewHTTPOracle(cfg.OracleURL, cache, zlog)

	wsHandler := handlers.NewWebSocketHandler(zlog)
	engine := services.NewEngine(st, registry, oracle, wsHandler, zlog, cfg.OracleSymbol, cfg.FaucetMax)

	// Expired options nobody resolves by hand are swept in the
	// background.
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if n, err := engine.SettleExpiredOptions(ctx); err != nil {
				zlog.Warn("expired options sweep", zap.Error(err))
			} else if n > 0 {
				zlog.Info("swept expired options", zap.Int("settled", n))
			}
			cancel()
		}
	}()

	userHandler := handlers.NewUserHandler(engine, jwtService)
	gameHandler := handlers.NewGameHandler(engine, cache)
	seedHandler := handlers.NewSeedHandler(engine)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Idempotency-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/auth/wallet", userHandler.Authenticate)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	protected.Use(middleware.RateLimitMiddleware(cache))
	{
		protected.GET("/ws", wsHandler.HandleWebSocket)

		protected.GET("/balance", userHandler.GetBalance)
		protected.POST("/faucet", userHandler.Faucet)
		protected.GET("/journal", userHandler.Journal)

		protected.GET("/seeds", seedHandler.GetSeeds)
		protected.POST("/seeds/client", seedHandler.SetClientSeed)
		protected.POST("/seeds/rotate", seedHandler.Rotate)
		protected.GET("/seeds/previous", seedHandler.Previous)

		protected.POST("/verify", gameHandler.Verify)

		gamesGroup := protected.Group("/games")
		{
			gamesGroup.GET("/active", gameHandler.ActiveBets)
			gamesGroup.GET("/history", gameHandler.History)
			gamesGroup.GET("/house", gameHandler.HouseStats)

			gamesGroup.POST("/coinflip/bet", gameHandler.PlayCoinFlip)
			gamesGroup.POST("/dice/bet", gameHandler.PlayDice)
			gamesGroup.POST("/keno/bet", gameHandler.PlayKeno)
			gamesGroup.POST("/wheel/bet", gameHandler.PlayWheel)

			mines := gamesGroup.Group("/mines")
			{
				mines.POST("/bet", gameHandler.OpenMines)
				mines.POST("/reveal", gameHandler.RevealMines)
				mines.POST("/cashout", gameHandler.CashoutMines)
			}

			options := gamesGroup.Group("/options")
			{
				options.POST("/bet", gameHandler.OpenOptions)
				options.POST("/resolve", gameHandler.ResolveOptions)
			}
		}
	}

	zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := router.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}
