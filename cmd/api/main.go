package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/leadhub/server/internal/auth"
	"github.com/leadhub/server/internal/cache"
	"github.com/leadhub/server/internal/config"
	"github.com/leadhub/server/internal/db"
	httphandler "github.com/leadhub/server/internal/http"
	"github.com/leadhub/server/internal/http/handlers"
	"github.com/leadhub/server/internal/leads"
	"github.com/leadhub/server/internal/notify"
	"github.com/leadhub/server/internal/repo"
)

func main() {
	// Load .env from CWD if present (env vars override)
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context for startup operations
	ctx := context.Background()

	// Open database connection
	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	leadRepo := repo.NewLeadRepo(database)

	// Revocation store: Redis when configured so logouts survive restarts
	var revocations auth.RevocationStore = auth.NewMemoryRevocations()
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		revocations = cache.NewRedisRevocations(rdb)
		log.Printf("Using Redis revocation store")
	} else {
		log.Printf("REDIS_URL not set; revoked tokens are kept in memory")
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	authority := auth.NewAdminAuthority(
		auth.AdminCredentials{Email: cfg.AdminEmail, Password: cfg.AdminPassword},
		jwtService,
		revocations,
	)

	// Notifications are optional; each one is enabled by its own setting
	var notifiers notify.Multi
	if cfg.SMTPHost != "" && cfg.AdminEmail != "" {
		notifiers = append(notifiers, notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.AdminEmail))
		log.Printf("New-lead emails enabled via %s:%d", cfg.SMTPHost, cfg.SMTPPort)
	}
	if cfg.AMQPURL != "" {
		publisher, conn, err := notify.Dial(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("Failed to set up lead event publisher: %v", err)
		}
		defer conn.Close()
		notifiers = append(notifiers, publisher)
		log.Printf("Lead events enabled on exchange %s", notify.ExchangeName)
	}

	policy := leads.PermissiveStatus
	if cfg.StrictStatus {
		policy = leads.StrictStatus
	}

	var notifier leads.Notifier
	if len(notifiers) > 0 {
		notifier = notifiers
	}
	leadService := leads.NewService(leadRepo, notifier, policy)

	// Create router
	router := httphandler.NewRouter(httphandler.RouterDeps{
		Leads:          handlers.NewLeadHandler(leadService),
		Admin:          handlers.NewAdminHandler(authority, leadService),
		Verifier:       authority,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
