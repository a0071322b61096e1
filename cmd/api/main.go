package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	handlerHttp "github.com/mikiasgoitom/GlitchLab/internal/handler/http"
	redisclient "github.com/mikiasgoitom/GlitchLab/internal/infrastructure/cache"
	"github.com/mikiasgoitom/GlitchLab/internal/infrastructure/config"
	database "github.com/mikiasgoitom/GlitchLab/internal/infrastructure/database"
	"github.com/mikiasgoitom/GlitchLab/internal/infrastructure/external_services"
	"github.com/mikiasgoitom/GlitchLab/internal/infrastructure/jwt"
	"github.com/mikiasgoitom/GlitchLab/internal/infrastructure/logger"
	"github.com/mikiasgoitom/GlitchLab/internal/infrastructure/mailer"
	"github.com/mikiasgoitom/GlitchLab/internal/infrastructure/metrics"
	"github.com/mikiasgoitom/GlitchLab/internal/infrastructure/notification"
	passwordservice "github.com/mikiasgoitom/GlitchLab/internal/infrastructure/password_service"
	randomgenerator "github.com/mikiasgoitom/GlitchLab/internal/infrastructure/random_generator"
	"github.com/mikiasgoitom/GlitchLab/internal/infrastructure/repository/mongodb"
	"github.com/mikiasgoitom/GlitchLab/internal/infrastructure/store"
	"github.com/mikiasgoitom/GlitchLab/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/GlitchLab/internal/infrastructure/validator"
	"github.com/mikiasgoitom/GlitchLab/internal/usecase"
	"github.com/redis/go-redis/v9"
)

func main() {
	appConfig, err := config.Load()
	if err != nil {
		logger.New("dev").Fatalf("config: %v", err)
	}
	appLogger := logger.New(appConfig.AppEnv)

	ctx := context.Background()

	// Establish MongoDB connection
	mongoClient, err := database.NewMongoDBClient(ctx, appConfig.MongoURI, appConfig.MongoDBName)
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect()

	if err := mongodb.EnsureIndexes(ctx, mongoClient.DB); err != nil {
		appLogger.Fatalf("Failed to create indexes: %v", err)
	}

	// Register custom validators
	validator.RegisterCustomValidators()
	metrics.Init()

	// Dependency Injection: Repositories
	userRepo := mongodb.NewMongoUserRepository(mongoClient.Collection(mongodb.UsersCollection))
	pendingRepo := mongodb.NewPendingUserRepository(mongoClient.Collection(mongodb.PendingUsersCollection))
	tokenRepo := mongodb.NewTokenRepository(mongoClient.Collection(mongodb.TokensCollection))
	workshopRepo := mongodb.NewWorkshopRepository(mongoClient.Collection(mongodb.WorkshopsCollection))
	reviewRepo := mongodb.NewReviewRepository(mongoClient.Collection(mongodb.ReviewsCollection))

	// Dependency Injection: Services
	hasher := passwordservice.NewHasher()
	jwtManager := jwt.NewJWTManager(appConfig.JWTSecret, appConfig.SessionTokenExpiry, appConfig.PendingTokenExpiry)
	jwtService := jwt.NewJWTService(jwtManager)
	mailService := external_services.NewEmailService(
		appConfig.EmailHost, appConfig.EmailPort,
		appConfig.EmailUser, appConfig.EmailPassword,
		appConfig.EmailFrom, appConfig.EmailSecure,
	)
	composer, err := mailer.NewComposer(appConfig.Timezone)
	if err != nil {
		appLogger.Fatalf("Failed to load email templates: %v", err)
	}
	dispatcher := notification.NewDispatcher(mailService, appLogger, appConfig.NotifyWorkers)
	randomGenerator := randomgenerator.NewRandomGenerator()
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()

	// Dependency Injection: Usecases
	emailUsecase := usecase.NewEmailVerificationUseCase(
		pendingRepo, userRepo, hasher, jwtService, composer, mailService,
		randomGenerator, uuidGenerator, appValidator, appConfig, appLogger,
	)
	userUsecase := usecase.NewUserUsecase(
		userRepo, tokenRepo, reviewRepo, workshopRepo, hasher, jwtService, composer, mailService,
		appLogger, appConfig, appValidator, uuidGenerator, randomGenerator,
	)
	workshopUsecase := usecase.NewWorkshopUseCase(workshopRepo, userRepo, dispatcher, composer, uuidGenerator, appLogger)
	reviewUsecase := usecase.NewReviewUseCase(reviewRepo, workshopRepo, userRepo, uuidGenerator, appLogger)
	badgeUsecase := usecase.NewBadgeUseCase(userRepo, workshopRepo, uuidGenerator, appLogger)

	// Optional Dependency Injection: Redis cache
	var rdb *redis.Client
	if appConfig.RedisURL != "" {
		rdb, err = redisclient.NewRedisFromURL(ctx, appConfig.RedisURL)
		if err != nil {
			appLogger.Warnf("Redis unavailable, running without cache: %v", err)
		} else {
			defer redisclient.Close(rdb)
			workshopCache := store.NewWorkshopCacheStore(rdb)
			workshopUsecase.SetWorkshopCache(workshopCache)
			reviewUsecase.SetReviewCache(workshopCache)
			userUsecase.SetCache(workshopCache)
		}
	}

	healthCheck := func(ctx context.Context) error {
		if err := mongoClient.Ping(ctx); err != nil {
			return err
		}
		if rdb != nil {
			return rdb.Ping(ctx).Err()
		}
		return nil
	}

	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if !appConfig.IsProduction() {
		router.Use(gin.Logger())
	}

	// Setup API routes
	appRouter := handlerHttp.NewRouter(
		userUsecase, emailUsecase, workshopUsecase, reviewUsecase, badgeUsecase,
		jwtService, appLogger,
		handlerHttp.RouterConfig{
			CORSOrigins:        appConfig.CORSOrigins,
			RateLimitPerSecond: appConfig.RateLimitPerSecond,
			OAuth:              handlerHttp.NewGoogleOAuthConfig(appConfig.GoogleClientID, appConfig.GoogleClientSecret, appConfig.AppBaseURL),
			HealthCheck:        healthCheck,
		},
	)
	appRouter.SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine for graceful shutdown
	go func() {
		appLogger.Infof("Server running on port %s", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Infof("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Server forced to shutdown: %v", err)
	}
	// drain queued notifications before closing the stores
	dispatcher.Close()
}
