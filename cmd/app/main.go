package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/dnvishnu12/slot-booking-backend/docs"

	"github.com/dnvishnu12/slot-booking-backend/internal/booking"
	"github.com/dnvishnu12/slot-booking-backend/internal/config"
	"github.com/dnvishnu12/slot-booking-backend/internal/db"
	"github.com/dnvishnu12/slot-booking-backend/internal/email"
	"github.com/dnvishnu12/slot-booking-backend/internal/logger"
	"github.com/dnvishnu12/slot-booking-backend/internal/roadmap"
	"github.com/dnvishnu12/slot-booking-backend/internal/server"

	"github.com/gin-gonic/gin"
)

type storage struct {
	bookings booking.Repository
	roadmaps roadmap.Repository
	pinger   db.Pinger
	close    func()
}

// @title Slot Booking API
// @version 1.0
// @description Class slot booking with FIFO waitlists, plus a per-user roadmap store.
// @host localhost:8080
// @BasePath /
func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)
	logger.Info("Starting slot booking service", "driver", cfg.StorageDriver, "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Fatalf("Failed to open storage: %v", err)
	}
	defer store.close()

	var notifier booking.Notifier
	if cfg.NotificationsEnabled() {
		emailService := email.New(
			cfg.EmailFrom,
			cfg.EmailFromName,
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPUser,
			cfg.SMTPPass,
			cfg.RedisAddr,
		)
		defer emailService.Close()

		if err := emailService.Ping(ctx); err != nil {
			logger.Warn("Email queue unreachable, notifications will be retried per request", "error", err)
		}

		go emailService.Start(ctx)
		notifier = emailService
		logger.Info("Email service initialized", "redis", cfg.RedisAddr)
	} else {
		logger.Info("REDIS_ADDR not set, email notifications disabled")
	}

	srv := server.New(cfg,
		booking.NewService(store.bookings, notifier),
		roadmap.NewService(store.roadmaps),
		store.pinger,
	)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		database := client.Database(cfg.MongoDatabase)
		logger.Info("Mongo connected", "database", cfg.MongoDatabase)

		return &storage{
			bookings: booking.NewMongoRepository(database),
			roadmaps: roadmap.NewMongoRepository(database),
			pinger:   db.MongoPinger(client),
			close:    func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.DriverMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		return &storage{
			bookings: booking.NewMemoryRepository(),
			roadmaps: roadmap.NewMemoryRepository(),
			pinger:   db.NopPinger(),
			close:    func() {},
		}, nil

	default:
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("Database connected")

		if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
			database.Close()
			return nil, err
		}
		logger.Info("Migrations completed")

		return &storage{
			bookings: booking.NewRepository(database),
			roadmaps: roadmap.NewRepository(database),
			pinger:   db.SQLPinger(database),
			close:    func() { database.Close() },
		}, nil
	}
}
