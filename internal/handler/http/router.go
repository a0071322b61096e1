package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/GlitchLab/internal/handler/http/middleware"
	"github.com/mikiasgoitom/GlitchLab/internal/infrastructure/metrics"
	"github.com/mikiasgoitom/GlitchLab/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
	"golang.org/x/oauth2"
)

// RouterConfig carries the transport settings read from config.
type RouterConfig struct {
	CORSOrigins        []string
	RateLimitPerSecond float64
	OAuth              *oauth2.Config
	// HealthCheck reports whether the backing stores are reachable.
	HealthCheck func(ctx context.Context) error
}

type Router struct {
	authHandler     *AuthHandler
	userHandler     *UserHandler
	workshopHandler *WorkshopHandler
	reviewHandler   *ReviewHandler
	badgeHandler    *BadgeHandler
	jwtService      usecase.JWTService
	cfg             RouterConfig
}

func NewRouter(
	userUsecase usecasecontract.IUserUseCase,
	emailVerUC usecasecontract.IEmailVerificationUC,
	workshopUC usecasecontract.IWorkshopUseCase,
	reviewUC usecasecontract.IReviewUseCase,
	badgeUC usecasecontract.IBadgeUseCase,
	jwtService usecase.JWTService,
	logger usecasecontract.IAppLogger,
	cfg RouterConfig,
) *Router {
	return &Router{
		authHandler:     NewAuthHandler(emailVerUC, userUsecase, cfg.OAuth, logger),
		userHandler:     NewUserHandler(userUsecase, logger),
		workshopHandler: NewWorkshopHandler(workshopUC, logger),
		reviewHandler:   NewReviewHandler(reviewUC, logger),
		badgeHandler:    NewBadgeHandler(badgeUC, logger),
		jwtService:      jwtService,
		cfg:             cfg,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	origins := r.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.HTTPMetrics())
	if r.cfg.RateLimitPerSecond > 0 {
		router.Use(middleware.RateLimiter(middleware.NewLimiter(r.cfg.RateLimitPerSecond)))
	}

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/healthz", r.healthz)

	v1 := router.Group("/api/v1")
	authenticated := middleware.AuthMiddleWare(r.jwtService)
	instructorOnly := middleware.RequireInstructor()

	// Public routes (no authentication required)
	auth := v1.Group("/auth")
	// signup and password endpoints send email, so they get a tighter budget
	auth.Use(middleware.RateLimiter(middleware.NewLimiter(1)))
	{
		auth.POST("/register", r.authHandler.Register)
		auth.POST("/verify-email", r.authHandler.VerifyEmail)
		auth.POST("/resend-verification", r.authHandler.ResendVerification)
		auth.POST("/login", r.authHandler.Login)
		auth.POST("/forgot-password", r.authHandler.ForgotPassword)
		auth.POST("/reset-password", r.authHandler.ResetPassword)

		// Google OAuth endpoints
		auth.GET("/google/login", r.authHandler.HandleGoogleLogin)
		auth.GET("/google/callback", r.authHandler.HandleGoogleCallback)
	}

	workshops := v1.Group("/workshops")
	{
		workshops.GET("", r.workshopHandler.ListWorkshops)
		workshops.GET("/:id", r.workshopHandler.GetWorkshop)

		workshops.POST("/register", authenticated, r.workshopHandler.Register)
		workshops.POST("/unregister", authenticated, r.workshopHandler.Unregister)

		workshops.POST("", authenticated, instructorOnly, r.workshopHandler.CreateWorkshop)
		workshops.PUT("/:id", authenticated, instructorOnly, r.workshopHandler.UpdateWorkshop)
		workshops.POST("/:id/cancel", authenticated, instructorOnly, r.workshopHandler.CancelWorkshop)
		workshops.POST("/uncancel", authenticated, instructorOnly, r.workshopHandler.UncancelWorkshop)
		workshops.POST("/:id/send-reminder", authenticated, instructorOnly, r.workshopHandler.SendReminder)
		workshops.POST("/remove-user", authenticated, instructorOnly, r.workshopHandler.RemoveUser)
		workshops.GET("/registered-users", authenticated, instructorOnly, r.workshopHandler.GetRegisteredUsers)
	}

	reviews := v1.Group("/reviews")
	{
		reviews.GET("", r.reviewHandler.GetWorkshopReviews)
		reviews.GET("/featured", r.reviewHandler.GetFeaturedReviews)
		reviews.GET("/:id", r.reviewHandler.GetReview)

		reviews.POST("", authenticated, r.reviewHandler.CreateReview)
		reviews.GET("/user", authenticated, r.reviewHandler.GetUserReviews)
		reviews.GET("/check", authenticated, r.reviewHandler.CheckReview)
		reviews.PUT("/:id", authenticated, r.reviewHandler.UpdateReview)
		reviews.DELETE("/:id", authenticated, r.reviewHandler.DeleteReview)
		reviews.PUT("/feature", authenticated, instructorOnly, r.reviewHandler.FeatureReview)
	}

	users := v1.Group("/users")
	{
		users.GET("/profile/:id", r.userHandler.GetUser)

		users.GET("/me", authenticated, r.userHandler.GetCurrentUser)
		users.PUT("/update", authenticated, r.userHandler.UpdateUser)
		users.PUT("/password", authenticated, r.userHandler.ChangePassword)
		users.PUT("/notification-preferences", authenticated, r.userHandler.UpdateNotificationPreferences)
		users.PUT("/email-language", authenticated, r.userHandler.UpdateEmailLanguage)
		users.GET("/notifications", authenticated, r.userHandler.GetNotifications)
		users.PUT("/notifications/read", authenticated, r.userHandler.MarkNotificationsRead)
		users.DELETE("/delete", authenticated, r.userHandler.DeleteAccount)
	}

	v1.POST("/badges/award", authenticated, instructorOnly, r.badgeHandler.AwardBadge)

	v1.GET("/instructors", r.userHandler.ListInstructors)
	v1.POST("/instructors", authenticated, instructorOnly, r.userHandler.CreateInstructor)
}

func (r *Router) healthz(c *gin.Context) {
	if r.cfg.HealthCheck != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := r.cfg.HealthCheck(ctx); err != nil {
			ErrorHandler(c, http.StatusServiceUnavailable, "unhealthy")
			return
		}
	}
	MessageHandler(c, http.StatusOK, "ok")
}
