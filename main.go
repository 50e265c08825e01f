package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/username/kasboek/backend/src/config"
	"github.com/username/kasboek/backend/src/database"
	"github.com/username/kasboek/backend/src/handlers"
	"github.com/username/kasboek/backend/src/ingest"
	"github.com/username/kasboek/backend/src/logger"
	"github.com/username/kasboek/backend/src/store"
	"github.com/username/kasboek/backend/src/version"
)

const (
	listCacheExpiration      = 5 * time.Minute
	listCacheCleanupInterval = 10 * time.Minute
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding")
			} else if origin == "" {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func main() {
	cfg := config.Load()
	logger.InitLogger(cfg.LogLevel)

	logger.L.Info("kasboek backend server starting...", "version", version.Version)

	logger.L.Info("Initializing database...", "path", cfg.DatabasePath)
	db, err := database.Connect(cfg.DatabasePath)
	if err != nil {
		stdlog.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DatabasePath, cfg.MigrationsPath); err != nil {
		stdlog.Fatalf("failed to run migrations: %v", err)
	}

	listCache := cache.New(listCacheExpiration, listCacheCleanupInterval)

	transactionStore := store.NewTransactionStore(db)
	ingestService := ingest.NewService(db, transactionStore)
	transactionHandler := handlers.NewTransactionHandler(ingestService, transactionStore, listCache, cfg.MaxUploadSizeBytes)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS(cfg.AllowedOrigins))
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "kasboek backend is running"})
	})

	r.Get("/version", handlers.HandleGetVersion)

	r.Route("/transactions", func(r chi.Router) {
		r.Post("/upload", transactionHandler.HandleUpload)
		r.Get("/", transactionHandler.HandleListTransactions)
		r.Get("/{transactionID}", transactionHandler.HandleGetTransaction)
	})

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
