package main

import (
	"context"
	"log"
	"time"

	"IranElaj/Config"
	"IranElaj/Controllers"
	"IranElaj/CronJobs"
	"IranElaj/Logger"
	"IranElaj/Middleware"
	"IranElaj/Models"
	"IranElaj/Repositories"
	"IranElaj/Routes"
	"IranElaj/Services"
	"IranElaj/Utils/Token"
	"IranElaj/Whatsapp"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := Config.Load()

	logger, err := Logger.New(cfg.Log.Level, cfg.Log.Format, "iranelaj-api")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	var users Repositories.UserRepository
	var requests Repositories.RequestRepository
	if cfg.Database.Enabled {
		db, err := Models.ConnectDataBase(cfg.Database, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		users = Repositories.NewPostgresUserRepository(db)
		requests = Repositories.NewPostgresRequestRepository(db)
	} else {
		logger.Warn("Database disabled, using in-memory repositories")
		memoryUsers := Repositories.NewMemoryUserRepository()
		users = memoryUsers
		requests = Repositories.NewMemoryRequestRepository(memoryUsers)
	}

	var throttle Services.OTPThrottle = Services.NoopThrottle{}
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable, OTP throttle will allow sends until it recovers", zap.Error(err))
		}
		cancel()
		throttle = Services.NewRedisOTPThrottle(redisClient, cfg.OTPResendInterval)
	}

	var sender Whatsapp.Sender
	if cfg.MessagingConfigured() {
		sender = Whatsapp.NewCloudClient(cfg.MessagingAPIBaseURL, cfg.MessagingAPIToken, cfg.MessagingPhoneID, logger)
	} else {
		logger.Info("WhatsApp Cloud API not configured, admin notifications use links only")
	}

	issuer := Token.NewIssuer(cfg.SessionSecret, cfg.SessionTTL)
	authService := Services.NewAuthService(cfg, users, issuer, throttle, logger)
	notifier := Services.NewNotifier(cfg, sender, logger)
	requestService := Services.NewRequestService(cfg, requests, users, notifier, logger)
	handler := Controllers.NewHandler(cfg, authService, requestService, logger)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(Middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))
	Routes.ConfigRoutes(router, handler, issuer, users, logger)

	if cfg.OTPSweepInterval > 0 {
		scheduler, err := CronJobs.NewOTPSweeper(users, logger).StartSweepCron(cfg.OTPSweepInterval)
		if err != nil {
			logger.Fatal("Failed to start OTP sweeper", zap.Error(err))
		}
		defer scheduler.Stop()
	}

	logger.Info("Starting HTTP server", zap.String("addr", cfg.HTTPAddr))
	if err := router.Run(cfg.HTTPAddr); err != nil {
		logger.Fatal("HTTP server stopped", zap.Error(err))
	}
}
