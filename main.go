package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"presence_backend/attendance"
	"presence_backend/cache"
	"presence_backend/config"
	"presence_backend/db"
	"presence_backend/handlers"
	"presence_backend/logger"
	"presence_backend/middleware"
	"presence_backend/models"
	"presence_backend/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found") // Non-fatal in production
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	zlog, err := logger.New(cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	// Connect to database
	database, err := db.Open(ctx, db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		zlog.Fatal("connecting to database", zap.Error(err))
	}
	defer database.Close()

	// Initialize database schema
	if err := db.InitSchema(ctx, database); err != nil {
		zlog.Fatal("initializing schema", zap.Error(err))
	}

	clock, err := attendance.LoadClock(cfg.Timezone)
	if err != nil {
		zlog.Fatal("loading attendance time zone", zap.Error(err))
	}

	if cfg.SeedDemo {
		if err := db.SeedData(ctx, database, clock.Now(), middleware.HashPassword); err != nil {
			zlog.Warn("seeding demo data", zap.Error(err))
		}
	}
	if cfg.BootstrapAdminID != "" {
		bootstrapAdmin(ctx, database, cfg, zlog)
	}

	opts := []attendance.Option{
		attendance.WithStrictStatus(cfg.StrictStatus),
		attendance.WithLogger(zlog.Named("attendance")),
	}
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			zlog.Warn("redis unavailable, attendance rates will not be cached", zap.Error(err))
		} else {
			defer client.Close()
			opts = append(opts, attendance.WithCache(cache.NewRateCache(client, cfg.RateCacheTTL, zlog.Named("cache"))))
		}
	}

	ledger := db.NewAttendanceStore(database)
	directory := db.NewDirectoryStore(database)
	recorder := attendance.NewRecorder(ledger, clock, opts...)
	calculator := attendance.NewCalculator(ledger, clock, opts...)
	tokens := middleware.NewTokenService(database, []byte(cfg.JWTSecret), cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(zlog.Named("http")))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
		middleware.RequestIDHeader,
	}
	corsConfig.AllowMethods = []string{
		"GET",
		"POST",
		"OPTIONS",
	}
	r.Use(cors.New(corsConfig))

	// Setup routes
	routes.SetupRoutes(r, routes.Handlers{
		Auth:       handlers.NewAuthHandler(directory, tokens, zlog),
		Attendance: handlers.NewAttendanceHandler(recorder, calculator, zlog),
		Dashboard:  handlers.NewDashboardHandler(directory, calculator, zlog),
		Student:    handlers.NewStudentHandler(directory, zlog),
		Teacher:    handlers.NewTeacherHandler(directory, zlog),
		User:       handlers.NewUserHandler(directory, zlog),
		Health:     handlers.NewHealthHandler(database),
	}, tokens, zlog)

	// Run server
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server listening", zap.String("addr", srv.Addr), zap.String("timezone", cfg.Timezone))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("listen", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}
}

// bootstrapAdmin creates the configured first admin when no admin exists yet.
// Further admins are registered by an existing admin.
func bootstrapAdmin(ctx context.Context, database *sql.DB, cfg *config.Config, zlog *zap.Logger) {
	hashedPassword, err := middleware.HashPassword(cfg.BootstrapAdminPassword)
	if err != nil {
		zlog.Fatal("hashing bootstrap admin password", zap.Error(err))
	}
	created, err := db.BootstrapAdmin(ctx, database, models.Admin{
		AdminID:      cfg.BootstrapAdminID,
		Name:         cfg.BootstrapAdminName,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		zlog.Fatal("bootstrapping admin", zap.Error(err))
	}
	if created {
		zlog.Info("bootstrap admin created", zap.String("admin_id", cfg.BootstrapAdminID))
	}
}
