package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/sessions"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/skillgateway/backend/docs"
	"github.com/skillgateway/backend/internal/ai"
	authMiddleware "github.com/skillgateway/backend/internal/auth/middleware"
	authService "github.com/skillgateway/backend/internal/auth/service"
	"github.com/skillgateway/backend/internal/config"
	"github.com/skillgateway/backend/internal/handlers"
	"github.com/skillgateway/backend/internal/logger"
	loggerMiddleware "github.com/skillgateway/backend/internal/logger/middleware"
	sharedMiddleware "github.com/skillgateway/backend/internal/middlewares"
	"github.com/skillgateway/backend/internal/pdf"
	"github.com/skillgateway/backend/internal/repositories"
	"github.com/skillgateway/backend/internal/services"
	"github.com/skillgateway/backend/internal/session"
	"github.com/skillgateway/backend/internal/storage"
)

// otpTTL is how long a one-time login code stays redeemable
const otpTTL = 5 * time.Minute

// @title Skill Gateway API
// @version 1.0
// @description Backend for the Skill Gateway course platform: auth, payments, enrollment, course player, admin panel.

// @contact.name API Support

// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey AdminToken
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Skill Gateway backend")

	// Connect to database
	db, err := connectDB(cfg.Database.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to Redis for sessions and one-time codes
	redisClient, err := session.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	sessionStore := session.NewStore(redisClient, cfg.Session.TTL)
	otpStore := session.NewOTPStore(redisClient, otpTTL)

	// Signed cookie carrying the session id
	cookies := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	// Local upload storage
	uploads, err := storage.NewLocalStorage(cfg.Uploads.BasePath)
	if err != nil {
		logger.Logger.Fatal("Failed to prepare upload storage", zap.Error(err))
	}

	// Admin token generator
	tokenGenerator := authService.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	courseRepo := repositories.NewCourseRepository(db)
	enrollmentRepo := repositories.NewEnrollmentRepository(db)
	progressRepo := repositories.NewLessonProgressRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	activityRepo := repositories.NewActivityRepository(db)
	supportRepo := repositories.NewSupportRepository(db)
	projectRepo := repositories.NewProjectRepository(db)

	// Initialize services
	auth := services.NewAuthService(userRepo, sessionStore, otpStore, activityRepo,
		tokenGenerator, logger.Logger, cfg.Admin.Username, cfg.Admin.PasswordHash)
	payments := services.NewPaymentService(paymentRepo, userRepo, courseRepo,
		notificationRepo, activityRepo, logger.Logger)
	progress := services.NewProgressService(courseRepo, enrollmentRepo, progressRepo, logger.Logger)
	dashboard := services.NewDashboardService(userRepo, enrollmentRepo, paymentRepo,
		activityRepo, notificationRepo, supportRepo, uploads, logger.Logger)
	support := services.NewSupportService(supportRepo)
	projects := services.NewProjectService(projectRepo, uploads)
	skillbot := services.NewSkillbotService(
		ai.NewClient(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model), logger.Logger)
	reports := services.NewReportService(userRepo, paymentRepo, projectRepo,
		paymentRepo, pdf.NewRenderer())
	admin := services.NewAdminService(activityRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(auth, cookies, logger.Logger)
	paymentHandler := handlers.NewPaymentHandler(payments, logger.Logger)
	playerHandler := handlers.NewPlayerHandler(progress, logger.Logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboard, cfg.Uploads.MaxAvatarSize, logger.Logger)
	supportHandler := handlers.NewSupportHandler(support, skillbot, logger.Logger)
	projectHandler := handlers.NewProjectHandler(projects, cfg.Uploads.MaxProjectSize, logger.Logger)
	reportHandler := handlers.NewReportHandler(reports, logger.Logger)
	adminHandler := handlers.NewAdminHandler(admin, support, projects, logger.Logger)

	// Session and admin middleware
	sessionMw := authMiddleware.SessionMiddleware(cookies, sessionStore)
	optionalSessionMw := authMiddleware.OptionalSessionMiddleware(cookies, sessionStore)
	adminMw := authMiddleware.AdminMiddleware(tokenGenerator)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(sharedMiddleware.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(sharedMiddleware.RecoveryMiddleware(logger.Logger))
	r.Use(sharedMiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(sharedMiddleware.RequestSizeLimitMiddleware(cfg.Uploads.MaxProjectSize + 1<<20))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Uploaded files
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(cfg.Uploads.BasePath))))

	// Register routes
	authHandler.RegisterRoutes(r, sessionMw, optionalSessionMw)
	paymentHandler.RegisterRoutes(r, sessionMw)
	playerHandler.RegisterRoutes(r, sessionMw, optionalSessionMw)
	dashboardHandler.RegisterRoutes(r, sessionMw)
	supportHandler.RegisterRoutes(r)
	projectHandler.RegisterRoutes(r)
	reportHandler.RegisterRoutes(r, sessionMw)

	// Admin panel routes behind the admin credential
	r.Route("/admin", func(r chi.Router) {
		r.Use(adminMw)
		paymentHandler.RegisterAdminRoutes(r)
		reportHandler.RegisterAdminRoutes(r)
		adminHandler.RegisterRoutes(r)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
