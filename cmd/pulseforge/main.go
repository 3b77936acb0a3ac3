package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pulseforge/pulseforge/internal/api"
	"github.com/pulseforge/pulseforge/internal/cli"
	"github.com/pulseforge/pulseforge/internal/config"
	"github.com/pulseforge/pulseforge/internal/db"
	"github.com/pulseforge/pulseforge/internal/repository"
	"github.com/pulseforge/pulseforge/internal/service"
	"github.com/pulseforge/pulseforge/internal/session"
	"github.com/pulseforge/pulseforge/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	shutdown := telemetry.Setup(context.Background(), "pulseforge-cli", logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	// Open local state (session, last tenant, preferences)
	database, err := db.OpenDB(cfg.StatePath)
	if err != nil {
		return fmt.Errorf("opening state: %w", err)
	}
	defer database.Close()

	store := session.NewStore(database, db.NewSQLiteUnitOfWork(database))

	var requestObserver api.Observer
	if cfg.LogRequests {
		requestObserver = api.NewLogObserver(os.Stderr)
	}
	client := api.NewClient(api.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.RequestTimeout()}, store, requestObserver)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Auth:      service.NewAuthService(client, store, observers...),
		Projects:  service.NewProjectService(client, observers...),
		Tasks:     service.NewTaskService(client, observers...),
		Dashboard: service.NewDashboardService(client, observers...),
		Calendar:  service.NewCalendarService(client, observers...),
		System:    service.NewSystemService(client, observers...),
		Community: service.NewCommunityService(client, observers...),
		Support:   service.NewSupportService(client, observers...),
		Profile:   service.NewProfileService(store, observers...),
		Settings:  service.NewSettingsService(repository.NewSQLiteStorageRepo(database), store, observers...),
	}

	return cli.NewRootCmd(app).Execute()
}
