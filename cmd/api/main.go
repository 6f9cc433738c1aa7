package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/kamaukinuthia/irrigo-backend/api/routes"
	"github.com/kamaukinuthia/irrigo-backend/internal/analytics"
	"github.com/kamaukinuthia/irrigo-backend/internal/auth"
	"github.com/kamaukinuthia/irrigo-backend/internal/blog"
	"github.com/kamaukinuthia/irrigo-backend/internal/contacts"
	"github.com/kamaukinuthia/irrigo-backend/internal/notify"
	"github.com/kamaukinuthia/irrigo-backend/internal/products"
	"github.com/kamaukinuthia/irrigo-backend/internal/projects"
	"github.com/kamaukinuthia/irrigo-backend/internal/quotes"
	"github.com/kamaukinuthia/irrigo-backend/internal/stories"
	"github.com/kamaukinuthia/irrigo-backend/internal/team"
	"github.com/kamaukinuthia/irrigo-backend/internal/users"
	"github.com/kamaukinuthia/irrigo-backend/pkg/auth/session"
	"github.com/kamaukinuthia/irrigo-backend/pkg/config"
	"github.com/kamaukinuthia/irrigo-backend/pkg/db"
	"github.com/kamaukinuthia/irrigo-backend/pkg/logger"
	"github.com/kamaukinuthia/irrigo-backend/pkg/metrics"
	"github.com/kamaukinuthia/irrigo-backend/pkg/migrate"
	"github.com/kamaukinuthia/irrigo-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	deps, err := buildServices(cfg, logg, dbClient, sessionManager)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.HTTPMetrics = metrics.NewHTTPMetrics(registry)
	deps.PromRegistry = registry

	deps.Cfg = cfg
	deps.Logg = logg
	deps.DB = dbClient
	deps.Redis = redisClient
	deps.Sessions = sessionManager

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(*deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, sessions *session.Manager) (*routes.Deps, error) {
	gormDB := dbClient.DB()

	userSvc, err := users.NewService(users.NewRepository(gormDB), cfg.Password, logg)
	if err != nil {
		return nil, err
	}
	authSvc, err := auth.NewService(userSvc, sessions, cfg.JWT, logg)
	if err != nil {
		return nil, err
	}

	notifier, err := notify.New(
		cfg.Notify,
		notify.NewLogEmailSender(cfg.Notify.FromEmail, logg),
		notify.NewLogWhatsAppSender(logg),
		notify.NewLogSMSSender(logg),
		logg,
	)
	if err != nil {
		return nil, err
	}
	renderer, err := quotes.NewDocumentRenderer(cfg.Company)
	if err != nil {
		return nil, err
	}
	quoteSvc, err := quotes.NewService(quotes.NewRepository(gormDB), dbClient, renderer, notifier, logg)
	if err != nil {
		return nil, err
	}

	productSvc, err := products.NewService(products.NewRepository(gormDB))
	if err != nil {
		return nil, err
	}
	blogSvc, err := blog.NewService(blog.NewRepository(gormDB))
	if err != nil {
		return nil, err
	}
	teamSvc, err := team.NewService(team.NewRepository(gormDB))
	if err != nil {
		return nil, err
	}
	storySvc, err := stories.NewService(stories.NewRepository(gormDB))
	if err != nil {
		return nil, err
	}
	projectSvc, err := projects.NewService(projects.NewRepository(gormDB))
	if err != nil {
		return nil, err
	}
	contactSvc, err := contacts.NewService(contacts.NewRepository(gormDB))
	if err != nil {
		return nil, err
	}
	analyticsSvc, err := analytics.NewService(analytics.NewRepository(gormDB), logg)
	if err != nil {
		return nil, err
	}

	return &routes.Deps{
		Auth:      authSvc,
		Quotes:    quoteSvc,
		Products:  productSvc,
		Blog:      blogSvc,
		Team:      teamSvc,
		Stories:   storySvc,
		Projects:  projectSvc,
		Contacts:  contactSvc,
		Users:     userSvc,
		Analytics: analyticsSvc,
	}, nil
}
