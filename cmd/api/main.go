package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-recordshop/internal/config"
	"go-recordshop/internal/handler"
	"go-recordshop/internal/logger"
	"go-recordshop/internal/middleware"
	"go-recordshop/internal/model"
	"go-recordshop/internal/repository"
	"go-recordshop/internal/service"
	"go-recordshop/internal/ws"
	"go-recordshop/pkg/database"
	"go-recordshop/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	// 1. Load config (.env, config.yaml, environment)
	cfg, dotenv, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()
	if !dotenv {
		zl.Warn(".env file not found, using environment only")
	}

	// 2. Setup record store
	recordRepo, err := openRecordStore(cfg, zl)
	if err != nil {
		zl.Fatal("record store", zap.Error(err))
	}

	userRepo, err := repository.NewUserRepo(model.DefaultUsers)
	if err != nil {
		zl.Fatal("seed users", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub(zl.Named("ws"))
	go wsHub.Run(ctx)

	// 4. Dependency Injection (Wiring Layers)
	tokens := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTTTL)
	authService := service.NewAuthService(userRepo, tokens, zl.Named("auth"))
	recordService := service.NewRecordService(recordRepo, wsHub, zl.Named("records"))

	routes := handler.Routes{
		Auth:        handler.NewAuthHandler(authService),
		Records:     handler.NewRecordHandler(recordService),
		AuthService: authService,
		Hub:         wsHub,
		Enforce:     cfg.Auth.Enforce,
	}
	if cfg.Auth.LoginRateLimit > 0 {
		limiter := middleware.NewIPRateLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginBurst)
		routes.LoginLimiter = limiter.Handler()
		go sweepLimiter(ctx, limiter)
	}

	// 5. Setup Fiber
	app := handler.NewApp(handler.AppConfig{Name: cfg.Server.AppName, RequestLog: os.Stdout})
	handler.SetupRoutes(app, routes)

	if !cfg.Auth.Enforce {
		zl.Warn("AUTH_ENFORCE is off: /api/records accepts requests without a token")
	}

	// 6. Graceful Shutdown
	go func() {
		zl.Info("Record Shop API listening", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			zl.Panic("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()

	zl.Info("Shutting down server...")
	if err := shutdown(app); err != nil {
		zl.Fatal("Server forced to shutdown", zap.Error(err))
	}
	<-wsHub.Done()

	zl.Info("Server exited")
}

func openRecordStore(cfg *config.Config, zl *zap.Logger) (repository.RecordRepository, error) {
	var seed []model.RecordFields
	if cfg.Store.Seed {
		seed = model.DefaultRecords
	}

	if cfg.Store.Driver != config.DriverPostgres {
		return repository.NewRecordRepo(seed), nil
	}

	db, err := database.ConnectDB(cfg.Database.DB())
	if err != nil {
		return nil, err
	}
	zl.Info("Database connection established")

	if err := db.AutoMigrate(&model.Record{}); err != nil {
		return nil, err
	}
	if err := repository.SeedRecords(db, seed); err != nil {
		zl.Warn("Failed to seed records", zap.Error(err))
	}
	return repository.NewGormRecordRepo(db), nil
}

func sweepLimiter(ctx context.Context, l *middleware.IPRateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep(3 * time.Minute)
		}
	}
}

func shutdown(app *fiber.App) error {
	return app.ShutdownWithTimeout(10 * time.Second)
}
