package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estate-backoffice/internal/analytics"
	"estate-backoffice/internal/apiclient"
	"estate-backoffice/internal/auth"
	"estate-backoffice/internal/cache"
	"estate-backoffice/internal/config"
	"estate-backoffice/internal/database"
	"estate-backoffice/internal/db"
	"estate-backoffice/internal/handlers"
	"estate-backoffice/internal/health"
	h "estate-backoffice/internal/http"
	"estate-backoffice/internal/metrics"
	"estate-backoffice/internal/middleware"
	"estate-backoffice/internal/reports"
	"estate-backoffice/internal/repositories"
	"estate-backoffice/internal/session"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg := config.LoadFile(*configPath)
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis is optional - sessions fall back to memory
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Connection failed, using in-memory sessions: %v", err)
	}
	defer cache.Close()
	store := cache.NewSessionStore()

	optional := map[string]health.Pinger{}
	if client := cache.GetClient(); client != nil {
		optional["redis"] = health.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}

	// Postgres is optional - it only backs the action log
	var (
		audit            *middleware.AuditLogger
		actionLogHandler *handlers.ActionLogHandler
	)
	if cfg.Database.Enabled {
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			log.Printf("[Database] %v - action log disabled", err)
		} else {
			defer pool.Close()
			if err := database.NewMigrator(pool).RunMigrations(ctx); err != nil {
				log.Fatalf("Migrations failed: %v", err)
			}
			actionLogRepo := repositories.NewActionLogRepository(pool)
			audit = middleware.NewAuditLogger(actionLogRepo)
			defer audit.Close()
			actionLogHandler = handlers.NewActionLogHandler(actionLogRepo)
			optional["database"] = pool
		}
	}

	var archiver analytics.Archiver
	if s3Archiver, err := reports.NewS3Archiver(ctx, cfg); err != nil {
		log.Printf("[Archive] Disabled: %v", err)
	} else if s3Archiver != nil {
		archiver = s3Archiver
	}

	api := apiclient.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
	jwtManager := auth.NewJWTManager(cfg)
	sessions := session.NewManager(cfg, api, store, jwtManager, archiver)

	checker := health.NewHealthChecker(api, optional)

	authMiddleware := middleware.NewAuthMiddleware(sessions, cfg.Session.CookieName)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		handlers.NewPageHandler(sessions),
		handlers.NewAuthHandler(sessions, cfg.Session.CookieName, cfg.Server.SecureCookies),
		handlers.NewEventHandler(sessions),
		handlers.NewViewHandler(sessions),
		handlers.NewReportHandler(sessions),
		handlers.NewHealthHandler(checker, sessions.Count),
		actionLogHandler,
		authMiddleware,
	)

	var handler http.Handler = corsMiddleware(router)
	if audit != nil {
		handler = audit.Handler(handler)
	}
	handler = middleware.PanicRecovery(handler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s (API: %s)", srv.Addr, cfg.API.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
