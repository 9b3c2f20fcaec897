package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"hnsearch/internal/config"
	"hnsearch/internal/eventbus"
	"hnsearch/internal/fetch"
	"hnsearch/internal/history"
	"hnsearch/internal/logging"
	"hnsearch/internal/metrics"
	"hnsearch/internal/search"
	"hnsearch/internal/ui"
)

// flags holds the command line overrides. Empty values keep the config.
type flags struct {
	configPath  string
	endpoint    string
	query       string
	metricsAddr string
	logFile     string
	logLevel    string
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "Path to the config file (default: user config dir)")
	flag.StringVar(&f.endpoint, "endpoint", "", "Search API endpoint")
	flag.StringVar(&f.query, "query", "", "Initial search query")
	flag.StringVar(&f.query, "q", "", "Initial search query (shorthand)")
	flag.StringVar(&f.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	flag.StringVar(&f.logFile, "log-file", "", "Log file path")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error, off)")
	flag.Parse()

	// A bare argument is taken as the query
	if f.query == "" && flag.NArg() > 0 {
		f.query = flag.Arg(0)
	}
	return f
}

func (f flags) apply(cfg *config.Config) {
	if f.endpoint != "" {
		cfg.Search.Endpoint = f.endpoint
	}
	if f.query != "" {
		cfg.Search.DefaultQuery = f.query
	}
	if f.metricsAddr != "" {
		cfg.Metrics.Addr = f.metricsAddr
	}
	if f.logFile != "" {
		cfg.Log.File = f.logFile
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	// Load configuration; the log file location may come from it
	configSvc := config.NewConfigServiceWithBus(bus, f.configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		return err
	}
	config.ApplyEnv(cfg)
	f.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Set up logging. The terminal belongs to the UI, so logs go to a file.
	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
		Output: logFile,
	})
	logger := logging.NewLogger("main")
	logger.Info().Str("config", configSvc.Path()).Str("target", cfg.InitialURL()).Msg("Starting hnsearch")

	unsubscribeHistory := history.Subscribe(bus, logging.NewLogger("history"))
	defer unsubscribeHistory()

	recorder := metrics.NewRecorder()
	unsubscribeMetrics := recorder.Subscribe(bus)
	defer unsubscribeMetrics()

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := search.NewClient(search.Config{
		Timeout:   cfg.Search.RequestTimeout(),
		UserAgent: cfg.Search.UserAgent,
	})
	machine := fetch.New(client, cfg.InitialURL(),
		fetch.WithContext(ctx),
		fetch.WithBus(bus),
		fetch.WithDiscardStale(cfg.UISettings.DiscardStaleResults),
	)

	// A failing metrics server cancels gctx, which also stops the UI
	g, gctx := errgroup.WithContext(ctx)

	uiModel := ui.NewModel(cfg, machine, bus)
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(gctx))
	uiModel.SetProgram(p)

	if cfg.Metrics.Addr != "" {
		srv := metrics.NewServer(cfg.Metrics.Addr, recorder)
		g.Go(func() error {
			return srv.Run(gctx)
		})
	}

	g.Go(func() error {
		// Stop the metrics server once the UI exits
		defer stop()
		_, err := p.Run()
		if err != nil && gctx.Err() == nil {
			logger.Error().Err(err).Msg("Error running program")
			return fmt.Errorf("error running program: %w", err)
		}
		logger.Info().Msg("UI exited normally")
		return nil
	})

	return g.Wait()
}
