package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danivela/cineteca/internal/config"
	"github.com/danivela/cineteca/internal/database"
	"github.com/danivela/cineteca/internal/handlers"
	"github.com/danivela/cineteca/internal/middleware"
	"github.com/danivela/cineteca/internal/models"
	"github.com/danivela/cineteca/internal/services"
	"github.com/danivela/cineteca/internal/store"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrations()
			return
		case "populate":
			runPopulate()
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := log.New(os.Stdout, "[cineteca] ", log.LstdFlags|log.Lshortfile)
	logger.Printf("Starting Cineteca server in %s mode", cfg.Server.Env)

	db, err := database.New(database.Config{
		URL: cfg.Database.URL,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := database.NewRedisClient(database.RedisConfig{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Stores and services
	entityStore := store.NewEntityStore(db.Pool)
	listStore := store.NewListStore(db.Pool)
	tmdbService := services.NewTMDBService(services.TMDBConfig{
		APIKey:  cfg.TMDB.APIKey,
		BaseURL: cfg.TMDB.BaseURL,
		Timeout: cfg.TMDB.Timeout,
	})
	resolver := services.NewResolverService(entityStore, tmdbService, logger)
	catalogService := services.NewCatalogService(entityStore, tmdbService, resolver)
	listService := services.NewListService(listStore, resolver)

	// Rate limiter (100 req/min, enforced in production only)
	maxRequests := 1000
	if cfg.IsProduction() {
		maxRequests = 100
	}
	rateLimiter := middleware.NewRateLimiter(redisClient.Client, maxRequests, time.Minute, cfg.IsProduction())

	catalogHandler := handlers.NewCatalogHandler(catalogService, logger)
	listHandler := handlers.NewListHandler(listService, logger)

	mux := http.NewServeMux()

	// Catalog routes (public, rate limited)
	mux.Handle("GET /api/{kind}", rateLimiter.Limit(http.HandlerFunc(catalogHandler.Search)))
	mux.Handle("GET /api/{kind}/popular", rateLimiter.Limit(http.HandlerFunc(catalogHandler.Popular)))
	mux.Handle("GET /api/{kind}/upcoming", rateLimiter.Limit(http.HandlerFunc(catalogHandler.Upcoming)))
	mux.Handle("GET /api/{kind}/top-rated", rateLimiter.Limit(http.HandlerFunc(catalogHandler.TopRated)))
	mux.Handle("GET /api/{kind}/{id}/detail", rateLimiter.Limit(http.HandlerFunc(catalogHandler.Detail)))
	mux.Handle("GET /api/{kind}/{id}/recommendations", rateLimiter.Limit(http.HandlerFunc(catalogHandler.Recommendations)))

	// Routes that need the caller's identity
	mux.Handle("GET /api/{kind}/{id}/watch", rateLimiter.Limit(middleware.RequireUser(http.HandlerFunc(catalogHandler.Watch))))
	mux.Handle("POST /api/{kind}/{id}/list", rateLimiter.Limit(middleware.RequireUser(http.HandlerFunc(listHandler.Add))))
	mux.Handle("DELETE /api/{kind}/{id}/list", rateLimiter.Limit(middleware.RequireUser(http.HandlerFunc(listHandler.Remove))))
	mux.Handle("GET /api/list", rateLimiter.Limit(middleware.RequireUser(http.HandlerFunc(listHandler.Get))))

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		dbErr := db.Health(r.Context())
		redisErr := redisClient.Health(r.Context())

		if dbErr != nil || redisErr != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			dbStatus := "up"
			if dbErr != nil {
				dbStatus = "down"
			}
			redisStatus := "up"
			if redisErr != nil {
				redisStatus = "down"
			}
			fmt.Fprintf(w, `{"status":"unhealthy","database":"%s","redis":"%s"}`, dbStatus, redisStatus)
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok","database":"up","redis":"up"}`)
	})

	handler := middleware.Logger(logger)(mux)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Printf("Server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Println("Server exited")
}

// runMigrations runs database migrations
func runMigrations() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(database.Config{
		URL: cfg.Database.URL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	migrator := database.NewMigrator(db.Pool)

	ctx := context.Background()
	if err := migrator.Up(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")
}

// runPopulate warms the entity cache from the provider's discover listings
func runPopulate() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := log.New(os.Stdout, "[cineteca] ", log.LstdFlags)

	db, err := database.New(database.Config{
		URL: cfg.Database.URL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	entityStore := store.NewEntityStore(db.Pool)
	tmdbService := services.NewTMDBService(services.TMDBConfig{
		APIKey:  cfg.TMDB.APIKey,
		BaseURL: cfg.TMDB.BaseURL,
		Timeout: cfg.TMDB.Timeout,
	})
	resolver := services.NewResolverService(entityStore, tmdbService, logger)
	populateService := services.NewPopulateService(tmdbService, resolver, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	for _, kind := range []models.Kind{models.KindMovie, models.KindSeries} {
		if err := populateService.Populate(ctx, kind, 0); err != nil {
			logger.Fatalf("Failed to populate %s catalog: %v", kind, err)
		}
	}

	logger.Println("Catalog populated successfully")
}
