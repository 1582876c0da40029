package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/northwind-labs/sitecms/internal/catalogue"
	"github.com/northwind-labs/sitecms/internal/config"
	"github.com/northwind-labs/sitecms/internal/db"
	"github.com/northwind-labs/sitecms/internal/email"
	"github.com/northwind-labs/sitecms/internal/handlers/admin"
	"github.com/northwind-labs/sitecms/internal/handlers/auth"
	"github.com/northwind-labs/sitecms/internal/handlers/public"
	"github.com/northwind-labs/sitecms/internal/live"
	"github.com/northwind-labs/sitecms/internal/middleware"
	"github.com/northwind-labs/sitecms/internal/repository"
	"github.com/northwind-labs/sitecms/internal/routes"
	"github.com/northwind-labs/sitecms/internal/services"
	"github.com/northwind-labs/sitecms/internal/site"
	"github.com/northwind-labs/sitecms/pkg/debug"
	"github.com/northwind-labs/sitecms/pkg/httputil"
)

func main() {
	debug.Reinitialize()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		debug.Warning("Failed to load .env file from current directory: %v", err)
		if err := godotenv.Load("../.env"); err != nil {
			debug.Info("No .env file found, using process environment")
		} else {
			debug.Info("Successfully loaded .env file from parent directory")
		}
	}

	// Reinitialize debug package with loaded environment variables
	debug.Reinitialize()
	debug.Info("Initializing application...")

	if os.Getenv("JWT_SECRET") == "" {
		debug.Fatal("JWT_SECRET must be set")
	}

	cfg := config.NewConfig()

	database, err := db.New(cfg.Database)
	if err != nil {
		debug.Fatal("Database connection failed: %v", err)
	}
	defer database.Close()

	if err := database.RunMigrations(); err != nil {
		debug.Fatal("Database migrations failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)
	projectRepo := repository.NewProjectRepository(database)
	caseStudyRepo := repository.NewCaseStudyRepository(database)
	enquiryRepo := repository.NewEnquiryRepository(database)
	contentRepo := repository.NewContentRepository(database)
	visitRepo := repository.NewVisitRepository(database)

	authService := services.NewAuthService(userRepo, tokenRepo, cfg.JWTExpiryMinutes, cfg.SiteName)
	if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		debug.Fatal("Failed to create initial administrator: %v", err)
	}

	catalog, err := catalogue.New(cfg.ServicesFile)
	if err != nil {
		debug.Fatal("Failed to load services catalogue: %v", err)
	}
	if cfg.ServicesFile != "" {
		go func() {
			if err := catalog.Watch(ctx); err != nil {
				debug.Error("Services catalogue watcher stopped: %v", err)
			}
		}()
	}

	notifier, err := email.NewNotifier(cfg.Email)
	if err != nil {
		debug.Fatal("Failed to configure email notifications: %v", err)
	}

	hub := live.NewHub(cfg.CORSAllowedOrigin)
	defer hub.Close()

	dashboardService := services.NewDashboardService(visitRepo, enquiryRepo, projectRepo, catalog)
	enquiryService := services.NewEnquiryService(enquiryRepo, notifier, catalog, hub)

	maintenance := services.NewMaintenanceService(tokenRepo, enquiryRepo, visitRepo, cfg.SpamRetentionDays, cfg.VisitRetentionDays)
	if err := maintenance.Start(ctx); err != nil {
		debug.Fatal("Failed to start maintenance service: %v", err)
	}
	defer maintenance.Stop()

	proxies, err := httputil.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		debug.Fatal("Invalid TRUSTED_PROXIES: %v", err)
	}
	newLimiter := func() *middleware.RateLimiter {
		return middleware.NewRateLimiter(cfg.RateLimitPerMinute).WithTrustedProxies(proxies)
	}

	formLimiter := newLimiter()
	siteHandler, err := site.New(site.Config{
		Projects:     projectRepo,
		CaseStudies:  caseStudyRepo,
		Content:      contentRepo,
		Enquiries:    enquiryService,
		Services:     catalog,
		Visits:       visitRepo,
		Sessions:     authService,
		Stats:        dashboardService,
		FormLimit:    formLimiter.Middleware,
		SecureCookie: cfg.CookieSecure,
		SiteName:     cfg.SiteName,
	})
	if err != nil {
		debug.Fatal("Failed to build site: %v", err)
	}

	r := mux.NewRouter()
	routes.SetupRoutes(r, routes.Dependencies{
		AllowedOrigin: cfg.CORSAllowedOrigin,
		Authenticator: authService,
		Public:        public.NewHandler(projectRepo, caseStudyRepo, contentRepo, enquiryService, catalog, database.PingContext),
		Admin: admin.NewHandler(admin.Config{
			Projects:    projectRepo,
			CaseStudies: caseStudyRepo,
			Enquiries:   enquiryRepo,
			Content:     contentRepo,
			Stats:       dashboardService,
			Events:      hub,
			Live:        http.HandlerFunc(hub.ServeWS),
		}),
		Auth:           auth.NewHandler(authService, cfg.CookieSecure),
		EnquiryLimiter: newLimiter(),
		LoginLimiter:   newLimiter(),
		Site:           siteHandler,
	})

	server := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		debug.Info("Starting server on %s", cfg.ListenAddr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			debug.Error("Server failed: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	debug.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		debug.Error("Graceful shutdown failed: %v", err)
	}
	debug.Info("Server stopped")
}
