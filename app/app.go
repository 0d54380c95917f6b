package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"freight-rates-api/api"
	"freight-rates-api/cache"
	"freight-rates-api/config"
	"freight-rates-api/database"
	"freight-rates-api/database/ports"
	"freight-rates-api/database/rates"
	"freight-rates-api/database/regions"
)

// App represents the main application
type App struct {
	config    *config.Config
	db        *database.Database
	redis     *cache.RedisClient
	apiServer *api.Server
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	return &App{
		config: cfg,
	}
}

// Start starts the application
func (a *App) Start() error {
	// 1. Database Connection
	log.Println("🗄️  Connecting to database...")

	dbPort, err := strconv.Atoi(a.config.DatabasePort)
	if err != nil {
		return fmt.Errorf("invalid database port: %w", err)
	}

	db, err := database.Connect(
		a.config.DatabaseHost,
		dbPort,
		a.config.DatabaseName,
		a.config.DatabaseUser,
		a.config.DatabasePassword,
	)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	a.db = db
	log.Println("✅ Database connection established")

	// 2. Schema initialization
	if err := a.db.InitSchema(); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	// 3. Redis Connection (optional)
	log.Println("🧠 Connecting to Redis...")
	redisClient := cache.NewRedisClient(
		a.config.RedisHost,
		a.config.RedisPort,
		a.config.RedisPassword,
	)
	if redisClient == nil {
		log.Println("⚠️  Redis connection failed. Caching disabled.")
	} else {
		a.redis = redisClient
	}

	// 4. Repositories
	regionRepo := regions.NewRepository(a.db.DB())
	portRepo := ports.NewRepository(a.db.DB())
	rateRepo := rates.NewRepository(a.db.DB())

	// 5. API Server
	cacheTTL := time.Duration(a.config.RatesCacheTTLSeconds) * time.Second
	a.apiServer = api.NewServer(a.db, regionRepo, portRepo, rateRepo, a.redis, cacheTTL)

	serverErr := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(a.config.APIPort); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// 6. Wait for interrupt and perform graceful shutdown
	return a.gracefulShutdown(serverErr)
}

// gracefulShutdown blocks until an interrupt signal or a server failure,
// then drains in-flight requests and closes connections with a timeout.
func (a *App) gracefulShutdown(serverErr <-chan error) error {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("API server failed: %w", err)
	case <-interrupt:
		log.Println("🛑 Shutdown signal received, initiating graceful shutdown...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.apiServer.Stop(shutdownCtx); err != nil {
		log.Printf("Error shutting down API server: %v", err)
	} else {
		log.Println("✅ API server stopped")
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		} else {
			log.Println("✅ Database connection closed")
		}
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("Error closing redis: %v", err)
		} else {
			log.Println("✅ Redis connection closed")
		}
	}

	return nil
}
