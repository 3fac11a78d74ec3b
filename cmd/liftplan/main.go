package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/liftplan/internal/api"
	"github.com/alexanderramin/liftplan/internal/cli"
	"github.com/alexanderramin/liftplan/internal/config"
	"github.com/alexanderramin/liftplan/internal/db"
	"github.com/alexanderramin/liftplan/internal/intelligence"
	"github.com/alexanderramin/liftplan/internal/llm"
	"github.com/alexanderramin/liftplan/internal/repository"
	"github.com/alexanderramin/liftplan/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	var cfg *config.Config
	var err error
	if path := cli.ConfigPath(os.Args[1:]); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := config.NewLogger(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	// Open database
	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	exerciseRepo := repository.NewSQLiteExerciseRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// LLM calls are always counted; per-call log lines are opt-in.
	llmObserver := llm.MultiObserver{llm.NewPrometheusObserver(registry)}
	if cfg.LLM.LogCalls {
		llmObserver = append(llmObserver, llm.NewLogObserver(os.Stderr))
	}
	llmClient, err := llm.NewClient(cfg.LLM, llmObserver)
	if err != nil {
		return fmt.Errorf("building llm client: %w", err)
	}

	useCaseObservers := []service.UseCaseObserver{
		service.NewPrometheusUseCaseObserver(registry),
	}
	if cfg.LLM.LogCalls {
		useCaseObservers = append(useCaseObservers, service.NewLogUseCaseObserver(os.Stderr))
	}

	workouts := service.NewWorkoutService(exerciseRepo, intelligence.NewPlanGenerator(llmClient),
		cfg.Planner.CandidateLimit, useCaseObservers...)
	catalog := service.NewCatalogService(exerciseRepo, uow, useCaseObservers...)

	app := &cli.App{
		Workouts:    workouts,
		Catalog:     catalog,
		HTTPHandler: api.NewRouter(api.NewHandler(workouts, catalog, version), logger, registry),
		HTTPAddr:    cfg.Server.Addr,
		Logger:      logger,
	}

	// Detect interactive terminal for the generate form and spinner.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	rootCmd.Version = version
	return rootCmd.Execute()
}
