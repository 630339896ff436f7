// @title LearnHub API
// @version 1.0
// @description Course platform API: catalog, enrollments, quizzes, certificates, and admin statistics.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"learnhub/internal/adapter"
	"learnhub/internal/cache"
	"learnhub/internal/config"
	"learnhub/internal/database"
	"learnhub/internal/handler"
	"learnhub/internal/logger"
	"learnhub/internal/middleware"
	"learnhub/internal/repository"
	"learnhub/internal/service"

	_ "learnhub/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Repositories
	quizRepository := repository.NewQuizDatabaseAdapter(db)
	attemptRepository := repository.NewAttemptDatabaseAdapter(db)
	certificateRepository := repository.NewCertificateDatabaseAdapter(db)
	courseRepository := repository.NewCourseDatabaseAdapter(db)
	enrollmentRepository := repository.NewEnrollmentDatabaseAdapter(db)
	userRepository := repository.NewUserDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Services
	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	certificateService := service.NewCertificateService(certificateRepository, cacheAdapter, cfg.Cache.CertificateTTL)
	attemptService := service.NewAttemptService(quizRepository, attemptRepository, enrollmentRepository, certificateService, txManager)
	quizService := service.NewQuizService(quizRepository, courseRepository, txManager)
	courseService := service.NewCourseService(courseRepository, enrollmentRepository)
	adminService := service.NewAdminService(userRepository, courseRepository, enrollmentRepository, cacheAdapter, cfg.Cache.OverviewTTL)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	quizHandler := handler.NewQuizHandler(quizService, attemptService)
	certificateHandler := handler.NewCertificateHandler(certificateService)
	courseHandler := handler.NewCourseHandler(courseService)
	adminHandler := handler.NewAdminHandler(adminService)

	validationMiddleware := middleware.NewValidationMiddleware()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", middleware.OptionalAuth(authService), authHandler.Logout)

	// Course catalog
	apiGroup.Get("/courses", courseHandler.ListCourses)
	apiGroup.Get("/courses/:id", courseHandler.GetCourse)
	apiGroup.Post("/courses", middleware.Protected(authService), middleware.AdminOnly(), courseHandler.CreateCourse)
	apiGroup.Get("/courses/:id/quizzes", quizHandler.ListQuizzesByCourse)

	// Enrollment
	apiGroup.Post("/courses/:id/enroll", middleware.Protected(authService), courseHandler.Enroll)
	apiGroup.Get("/enrollments", middleware.Protected(authService), courseHandler.ListMyEnrollments)

	// Quiz authoring and learner views
	apiGroup.Post("/quizzes", middleware.Protected(authService), middleware.AdminOnly(), quizHandler.CreateQuiz)
	apiGroup.Get("/quizzes/:id", middleware.OptionalAuth(authService), quizHandler.GetQuiz)

	// Attempts
	apiGroup.Post("/quizzes/:id/attempts", middleware.Protected(authService), quizHandler.StartAttempt)
	apiGroup.Get("/quizzes/:id/attempts", middleware.Protected(authService), quizHandler.ListAttempts)
	apiGroup.Post("/attempts/:id/answers", middleware.Protected(authService), quizHandler.SubmitAnswer)
	apiGroup.Post("/attempts/:id/complete", middleware.Protected(authService), quizHandler.CompleteAttempt)

	// Certificates
	apiGroup.Get("/certificates/verify/:number", certificateHandler.Verify)
	apiGroup.Get("/courses/:id/certificate", middleware.Protected(authService), certificateHandler.GetMine)
	apiGroup.Post("/certificates", middleware.Protected(authService), middleware.AdminOnly(), certificateHandler.Issue)
	apiGroup.Post("/certificates/:id/revoke", middleware.Protected(authService), middleware.AdminOnly(), certificateHandler.Revoke)

	// Admin dashboard
	adminGroup := apiGroup.Group("/admin", middleware.Protected(authService), middleware.AdminOnly())
	adminGroup.Get("/overview", adminHandler.Overview)
	adminGroup.Get("/trends/enrollments", validationMiddleware.ValidateTrendParams(), adminHandler.EnrollmentsTrend)
	adminGroup.Get("/top-courses", validationMiddleware.ValidateLimitParam(10, 100), adminHandler.TopCourses)
	adminGroup.Get("/activity", validationMiddleware.ValidateLimitParam(20, 100), adminHandler.RecentActivity)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
