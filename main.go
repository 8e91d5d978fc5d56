package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petshop/internal/config"
	"petshop/internal/database"
	"petshop/internal/logger"
	"petshop/internal/mailer"
	"petshop/internal/repositories"
	"petshop/internal/server"
	"petshop/internal/services"
	"petshop/internal/storage"
	"petshop/internal/workers"
	"petshop/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	sugar, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	// --- Database ---
	db, err := database.Open(database.Config{
		Driver:        cfg.DBDriver,
		DSN:           cfg.DatabaseDSN,
		MaxOpenConns:  25,
		MaxIdleConns:  5,
		SlowThreshold: 200 * time.Millisecond,
		Debug:         !cfg.IsProduction() && cfg.LogLevel == "debug",
	}, sugar)
	if err != nil {
		sugar.Fatalw("Failed to connect to database", "driver", cfg.DBDriver, "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			sugar.Errorw("Error closing database", "error", err)
		}
	}()
	if err := database.Migrate(db); err != nil {
		sugar.Fatalw("Failed to migrate database", "error", err)
	}

	// --- Messaging ---
	// The services only see a nil publisher when RabbitMQ is disabled, which
	// turns event publishing into a no-op.
	var publisher services.EventPublisher
	var worker *workers.NotificationWorker
	if cfg.RabbitMQEnabled {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, PrefetchCount: 10}, sugar)
		if err != nil {
			sugar.Fatalw("Failed to initialize RabbitMQ client", "error", err)
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				sugar.Errorw("Error closing RabbitMQ client", "error", err)
			}
		}()
		publisher = mqClient

		m := mailer.New(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}, sugar)
		worker = workers.NewNotificationWorker(mqClient, m, sugar)
		if err := worker.Start(); err != nil {
			sugar.Fatalw("Failed to start notification worker", "error", err)
		}
	} else {
		sugar.Warn("RabbitMQ disabled, order and contact events will not be published")
	}

	store, err := storage.NewLocalStore(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		sugar.Fatalw("Failed to prepare media directory", "dir", cfg.MediaDir, "error", err)
	}

	// --- Repositories ---
	tx := repositories.NewGORMTransactor(db)
	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// --- Services ---
	audit := services.NewAuditService(repositories.NewGORMAuditLogRepository(db), sugar)
	svc := server.Services{
		Auth:    services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, sugar),
		Product: services.NewProductService(tx, productRepo, audit, sugar),
		Catalog: services.NewCatalogService(repositories.NewGORMCatalogRepository(db)),
		Cart:    services.NewCartService(repositories.NewGORMCartRepository(db), productRepo),
		Order:   services.NewOrderService(tx, repositories.NewGORMOrderRepository(db), audit, publisher, sugar),
		User:    services.NewUserService(tx, userRepo, audit, sugar),
		Blog:    services.NewBlogService(repositories.NewGORMBlogPostRepository(db), audit),
		Contact: services.NewContactService(repositories.NewGORMContactRequestRepository(db), audit, publisher, sugar),
		Media:   services.NewMediaService(repositories.NewGORMMediaFileRepository(db), store, audit, sugar),
		Audit:   audit,
	}

	app := server.New(server.Options{
		CORSOrigins:  cfg.CORSOrigins,
		MediaDir:     store.Dir(),
		MediaBaseURL: cfg.MediaBaseURL,
		AccessLog:    !cfg.IsProduction(),
	}, svc, sugar)

	// --- Start HTTP Server ---
	sugar.Infow("Starting server", "port", cfg.AppPort, "env", cfg.AppEnv, "driver", cfg.DBDriver)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			sugar.Fatalw("Server failed to start", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	sugar.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		sugar.Errorw("Error during Fiber shutdown", "error", err)
	}
	if worker != nil {
		worker.Stop()
	}

	sugar.Info("Server gracefully stopped")
}
