package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"wonders-cms/internal/auth"
	"wonders-cms/internal/cache"
	"wonders-cms/internal/config"
	"wonders-cms/internal/data"
	"wonders-cms/internal/handler"
	"wonders-cms/internal/logger"
	"wonders-cms/internal/middleware"
	"wonders-cms/internal/reconcile"
	"wonders-cms/internal/service"
	"wonders-cms/internal/storage"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, nil)

	// --- Pre-flight Checks ---
	if cfg.Auth.JWTSecret == "" || cfg.Auth.JWTSecret == "CHANGE_ME_IN_PRODUCTION_SECRET!!" {
		log.Fatal(errors.New("jwt secret not set"), "Please set a secure CMS_AUTH_JWT_SECRET environment variable.")
	}

	// --- Database Initialization and Migration ---
	if cfg.DB.Driver == "" || cfg.DB.Driver == "mysql" {
		log.Info("Applying database migrations...")
		if err := data.ApplyMigrations(cfg.DB.DSN, cfg.DB.Migrations); err != nil {
			log.Fatal(err, "Failed to apply migrations")
		}
		log.Info("Migrations applied successfully.")
	}

	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	// --- Upload Storage ---
	store := storage.New(cfg.Uploads.Root, log.With(map[string]interface{}{"component": "storage"}))
	if err := store.EnsureDirs(); err != nil {
		log.Fatal(err, "Failed to prepare upload directories")
	}

	// --- Cache Initialization ---
	log.Info("Initializing SQLite cache...")
	summaryCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer summaryCache.Close()
	log.Info("Cache initialized.")

	// --- Authentication and Authorization Setup ---
	log.Info("Initializing authentication and authorization...")
	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal(err, "Failed to initialize token issuer")
	}
	driver := cfg.DB.Driver
	if driver == "" {
		driver = "mysql"
	}
	enforcer, err := auth.NewEnforcer(driver, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)
	log.Info("Auth components initialized and policies seeded.")

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	deps := service.Deps{DB: db, Cascade: data.NewCascade(db), Files: store, Log: log}
	authService := service.NewAuthService(deps, tokens)
	if err := authService.EnsureAdmin(context.Background(), cfg.Admin); err != nil {
		log.Fatal(err, "Failed to seed the administrator account")
	}

	files := handler.Files{Store: store, MaxSize: cfg.Uploads.MaxSize}
	handlers := &handler.Handlers{
		Auth:        handler.NewAuthHandler(authService, files),
		Dashboard:   handler.NewDashboardHandler(service.NewDashboardService(deps, summaryCache, cfg.Cache.SummaryTTL)),
		Upload:      handler.NewUploadHandler(files, storage.DirEditor),
		Jelajahi:    handler.NewJelajahiHandler(service.NewJelajahiService(deps), files),
		Kuliner:     handler.NewKulinerHandler(service.NewKulinerService(deps), files),
		Home:        handler.NewHomeHandler(service.NewHomeService(deps), files),
		Event:       handler.NewEventHandler(service.NewEventService(deps), files),
		Wisata:      handler.NewWisataHandler(service.NewWisataService(deps), files),
		Activity:    handler.NewActivityHandler(service.NewActivityService(deps), files),
		UploadsRoot: store.Root(),
		DB:          db,
	}

	authzMiddleware := middleware.Authorizer(enforcer, tokens, log)
	errorMiddleware := middleware.Error(log)
	loginLimiter := middleware.RateLimit(cfg.Auth.LoginRate, cfg.Auth.LoginBurst)

	// --- Router Setup ---
	// The router is the central hub that directs incoming requests to the correct handlers.
	router := handler.NewRouter(handlers, authzMiddleware, errorMiddleware, loginLimiter)

	// --- Maintenance ---
	var scheduler *reconcile.Scheduler
	if cfg.Maintenance.Schedule != "" {
		rec := reconcile.New(db, store.Root(), log)
		scheduler, err = reconcile.NewScheduler(rec, cfg.Maintenance.Schedule, log)
		if err != nil {
			log.Fatal(err, "Failed to schedule upload cleanup")
		}
		scheduler.Start()
	}

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if scheduler != nil {
		scheduler.Stop(ctx)
	}
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
