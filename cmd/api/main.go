package main

import (
	"context"
	"net/http"
	"os"

	"github.com/oliverbanks/rotaboard-backend/api/routes"
	authsvc "github.com/oliverbanks/rotaboard-backend/internal/auth"
	availabilitysvc "github.com/oliverbanks/rotaboard-backend/internal/availability"
	peoplesvc "github.com/oliverbanks/rotaboard-backend/internal/people"
	rolessvc "github.com/oliverbanks/rotaboard-backend/internal/roles"
	rotassvc "github.com/oliverbanks/rotaboard-backend/internal/rotas"
	"github.com/oliverbanks/rotaboard-backend/internal/users"
	venuessvc "github.com/oliverbanks/rotaboard-backend/internal/venues"
	"github.com/oliverbanks/rotaboard-backend/pkg/auth/session"
	"github.com/oliverbanks/rotaboard-backend/pkg/config"
	"github.com/oliverbanks/rotaboard-backend/pkg/db"
	"github.com/oliverbanks/rotaboard-backend/pkg/logger"
	"github.com/oliverbanks/rotaboard-backend/pkg/metrics"
	"github.com/oliverbanks/rotaboard-backend/pkg/migrate"
	"github.com/oliverbanks/rotaboard-backend/pkg/redis"
	"github.com/joho/godotenv"
)

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

	sessionManager, err := session.NewManager(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	conn := dbClient.DB()

	authService, err := authsvc.NewService(users.NewRepository(conn), sessionManager, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	rolesService, err := rolessvc.NewService(rolessvc.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create roles service", err)
		os.Exit(1)
	}
	peopleRepo := peoplesvc.NewRepository(conn)
	peopleService, err := peoplesvc.NewService(peopleRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create people service", err)
		os.Exit(1)
	}
	availabilityService, err := availabilitysvc.NewService(availabilitysvc.NewRepository(conn), peopleRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create availability service", err)
		os.Exit(1)
	}
	venuesService, err := venuessvc.NewService(venuessvc.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create venues service", err)
		os.Exit(1)
	}
	rotasService, err := rotassvc.NewService(rotassvc.NewRepository(conn), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create rotas service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

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
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			httpMetrics,
			authService,
			rolesService,
			peopleService,
			availabilityService,
			venuesService,
			rotasService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
