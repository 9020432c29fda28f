package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/srgjo27/car_rental/internal/adapter/auth"
	"github.com/srgjo27/car_rental/internal/adapter/handler"
	"github.com/srgjo27/car_rental/internal/adapter/invoice"
	"github.com/srgjo27/car_rental/internal/adapter/lock"
	"github.com/srgjo27/car_rental/internal/adapter/notify"
	"github.com/srgjo27/car_rental/internal/adapter/repository/postgres"
	"github.com/srgjo27/car_rental/internal/core/ports"
	"github.com/srgjo27/car_rental/internal/core/services"
	"github.com/srgjo27/car_rental/internal/platform/config"
	"github.com/srgjo27/car_rental/internal/platform/database"
	"github.com/srgjo27/car_rental/internal/platform/logger"
	"github.com/srgjo27/car_rental/internal/platform/tracing"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to read .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	l := logger.Setup(cfg.LogLevel, cfg.AppEnv)
	ctx := l.WithContext(context.Background())

	shutdownTracer, err := tracing.InitTracerProvider("car-rental-api", cfg.JaegerEndpoint)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to init tracer")
	}

	db, err := database.NewPostgresDB(ctx, database.Config{
		DSN:          cfg.Database.DSN(),
		MaxOpenConns: 25,
		MaxIdleConns: 25,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("failed to connect to db after retries")
	}

	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		l.Fatal().Err(err).Msg("failed to migrate schema")
	}

	var locker ports.Locker = lock.NewKeyedMutex()
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})

		if err := redisClient.Ping(ctx).Err(); err != nil {
			l.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect to redis")
		}

		defer redisClient.Close()

		locker = lock.NewRedisLocker(redisClient, cfg.Redis.LockTTL)
		l.Info().Str("addr", cfg.Redis.Addr).Msg("using redis booking locks")
	} else {
		l.Warn().Msg("REDIS_ADDR not set, booking locks are local to this instance")
	}

	var publisher ports.NotificationPublisher = notify.LogPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := notify.NewKafkaPublisher(notify.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic))
		defer kafkaPublisher.Close()

		publisher = kafkaPublisher
		l.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.NotificationTopic).Msg("publishing notifications to kafka")
	}

	userRepo := postgres.NewUserRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	authService := services.NewAuthService(userRepo, auth.NewHasher(bcrypt.DefaultCost), tokens, cfg.Auth.TokenTTL, cfg.Auth.AdminTTL)
	userService := services.NewUserService(userRepo, authService)
	profileService := services.NewProfileService(userRepo, bookingRepo, paymentRepo)
	vehicleService := services.NewVehicleService(vehicleRepo)
	bookingService := services.NewBookingService(bookingRepo, vehicleRepo, paymentRepo, locker, publisher, invoice.NewRenderer("Car Rental"))

	router := handler.NewRouter(handler.RouterConfig{
		Logger: l,
		CORS: handler.CORSConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			FrontendURL:    cfg.CORS.FrontendURL,
		},
		Tokens:   tokens,
		Auth:     handler.NewAuthHandler(authService),
		Users:    handler.NewUserHandler(userService, profileService, authService),
		Vehicles: handler.NewVehicleHandler(vehicleService),
		Bookings: handler.NewBookingHandler(bookingService),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		l.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal().Err(err).Msg("server startup failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	l.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("server forced to shutdown")
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("failed to flush traces")
	}

	l.Info().Msg("server exiting")
}
