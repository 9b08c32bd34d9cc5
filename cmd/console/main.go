// Package main is the entry point for the Trade Console.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/fd1az/trade-console/business/market"
	marketDI "github.com/fd1az/trade-console/business/market/di"
	marketdomain "github.com/fd1az/trade-console/business/market/domain"
	"github.com/fd1az/trade-console/business/market/infra/stream"
	"github.com/fd1az/trade-console/business/trading"
	tradingapp "github.com/fd1az/trade-console/business/trading/app"
	tradingDI "github.com/fd1az/trade-console/business/trading/di"
	"github.com/fd1az/trade-console/internal/apm"
	"github.com/fd1az/trade-console/internal/config"
	"github.com/fd1az/trade-console/internal/health"
	"github.com/fd1az/trade-console/internal/logger"
	"github.com/fd1az/trade-console/internal/metrics"
	"github.com/fd1az/trade-console/internal/monolith"
	"github.com/fd1az/trade-console/internal/session"
	"github.com/fd1az/trade-console/internal/wsconn"
	"github.com/fd1az/trade-console/pkg/ui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	// Parse flags
	configPath := flag.String("config", "", "Path to configuration file")
	cliMode := flag.Bool("cli", false, "Run in CLI mode with logs (no TUI)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("trade-console %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// TUI is the default, CLI is for debugging
	tuiMode := !*cliMode

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		if !tuiMode {
			fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		}
		cancel()
	}()

	// Run application
	if err := run(ctx, *configPath, tuiMode); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, tuiMode bool) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Set TUI mode in config so modules know
	cfg.Console.TUIMode = tuiMode

	// Setup logger (only log to stderr in CLI mode)
	logLevel := logger.LevelInfo
	switch cfg.App.LogLevel {
	case "debug":
		logLevel = logger.LevelDebug
	case "warn":
		logLevel = logger.LevelWarn
	case "error":
		logLevel = logger.LevelError
	}

	var log *logger.Logger
	if tuiMode {
		// In TUI mode, suppress logs (discard output)
		log = logger.New(io.Discard, logLevel, cfg.App.Name, nil)
	} else {
		log = logger.New(os.Stderr, logLevel, cfg.App.Name, nil)
		log.Info(ctx, "starting Trade Console",
			"version", version,
			"environment", cfg.App.Environment,
		)
	}

	// Initialize observability if enabled
	var traceProvider apm.TraceProvider
	if cfg.Telemetry.Enabled {
		// Set service name env var for OTEL
		if cfg.Telemetry.ServiceName != "" {
			os.Setenv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
		}
		if cfg.Telemetry.OTLPEndpoint != "" {
			os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.OTLPEndpoint)
		}

		traceProvider = apm.NewTraceProvider(log, apm.WithProvider(apm.ZipkinProvider, log))
		log.Info(ctx, "tracing initialized", "provider", "zipkin", "endpoint", cfg.Telemetry.OTLPEndpoint)

		metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
			metrics.WithProviderConfig(metrics.ProviderCfg{
				Provider: metrics.PrometheusProvider,
			}),
		)

		// Start Prometheus metrics server in background
		port := cfg.Telemetry.PrometheusPort
		if port == 0 {
			port = 9090
		}
		go metrics.ServePrometheusMetrics(metrics.WithPort(strconv.Itoa(port)))
		log.Info(ctx, "prometheus metrics server started", "port", port)
	}
	defer func() {
		if traceProvider != nil {
			traceProvider.Stop()
		}
	}()

	// Start health check server on port 8081
	healthServer := health.NewServer(8081, version)
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	} else {
		log.Info(ctx, "health server started", "port", 8081)
	}
	defer healthServer.Stop(ctx)

	// Create monolith (application container)
	mono, err := monolith.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create monolith: %w", err)
	}
	defer mono.Close()

	// Define modules in dependency order
	modules := []monolith.Module{
		&market.Module{},  // Must be first - provides backend clients and stream
		&trading.Module{}, // Depends on market for gateways and the feed
	}

	// Register all module services
	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}

	if tuiMode {
		startFunc := func() error {
			if err := mono.StartModules(ctx, modules...); err != nil {
				return fmt.Errorf("failed to start modules: %w", err)
			}
			return nil
		}
		return runTUI(ctx, cfg, mono, startFunc)
	}

	// CLI mode: Start modules synchronously
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	return runCLI(ctx, cfg, mono, log)
}

// consoleDeps builds the service handles the TUI reads from.
func consoleDeps(cfg *config.Config, mono monolith.Monolith) ui.Deps {
	chartPath := filepath.Join(filepath.Dir(cfg.Console.SessionFile), "charts.json")

	return ui.Deps{
		Trading:       tradingDI.GetTradingService(mono.Services()),
		Market:        marketDI.GetMarketService(mono.Services()),
		Stream:        marketDI.GetStreamSession(mono.Services()),
		Sessions:      mono.SessionStore(),
		Charts:        session.NewChartCache(chartPath),
		Stores:        mono.Stores(),
		PollInterval:  cfg.Backend.PollInterval,
		StatsInterval: cfg.Backend.StatsInterval,
	}
}

func runTUI(ctx context.Context, cfg *config.Config, mono monolith.Monolith, startFunc func() error) error {
	deps := consoleDeps(cfg, mono)

	// Bridge realtime stream events into the running program.
	deps.Stream.Subscribe("tui", stream.Callbacks{
		OnAgentStarted: func(agentID string) {
			ui.Send(ui.AgentEventMsg{AgentID: agentID, Started: true})
		},
		OnAgentStopped: func(agentID string) {
			ui.Send(ui.AgentEventMsg{AgentID: agentID, Started: false})
		},
		OnBidPlaced: func(b marketdomain.Bid) {
			ui.Send(ui.BidPlacedMsg{Bid: b})
		},
		OnMatchFound: func(mt marketdomain.Match) {
			ui.Send(ui.MatchFoundMsg{Match: mt})
		},
		OnStateChange: func(state wsconn.State, err error) {
			ui.Send(ui.StreamStateMsg{State: state, Err: err})
		},
	})

	// Channel to receive StartModulesMsg signal
	startSignal := make(chan struct{}, 1)
	ui.OnStartModules = func() {
		select {
		case startSignal <- struct{}{}:
		default:
		}
	}

	// Create and start the TUI program IMMEDIATELY (shows welcome screen)
	p := tea.NewProgram(ui.New(deps), tea.WithAltScreen())
	ui.Program = p

	// Run console logic in background (non-blocking)
	errCh := make(chan error, 1)
	go func() {
		// Wait for welcome screen to complete (StartModulesMsg signal)
		select {
		case <-startSignal:
			// Welcome complete, start modules
		case <-ctx.Done():
			errCh <- nil
			return
		}

		ui.Send(ui.StartupMsg{Step: "config", Status: "done"})
		ui.Send(ui.StartupMsg{Step: "session", Status: "done"})

		// Start modules (backend and stream connections happen here)
		if err := startFunc(); err != nil {
			ui.Send(ui.ErrorMsg{Error: err})
			ui.Send(ui.StartupMsg{Step: "backend", Status: "failed"})
			errCh <- err
			return
		}

		// Wait for context cancellation
		<-ctx.Done()
		errCh <- nil
	}()

	// Run TUI (blocking) - shows immediately with welcome screen
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	// Check for background errors
	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// runCLI polls the pending book on the configured interval and logs what an
// operator would otherwise see, until the context is cancelled.
func runCLI(ctx context.Context, cfg *config.Config, mono monolith.Monolith, log *logger.Logger) error {
	svc := tradingDI.GetTradingService(mono.Services())

	// Log stream state changes instead of popups.
	marketDI.GetStreamSession(mono.Services()).Subscribe("cli", stream.Callbacks{
		OnStateChange: func(state wsconn.State, err error) {
			if err != nil {
				log.Warn(ctx, "stream state changed", "state", string(state), "error", err.Error())
				return
			}
			log.Info(ctx, "stream state changed", "state", string(state))
		},
	})

	interval := cfg.Backend.PollInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info(ctx, "console running, polling opportunities", "interval", interval.String())

	poll := func() {
		if err := svc.Refresh(ctx); err != nil {
			log.Error(ctx, "opportunity refresh failed", "error", err.Error())
			return
		}
		pending := svc.Pending(tradingapp.Filter{})
		log.Info(ctx, "pending opportunities", "count", len(pending))
		for _, p := range pending {
			log.Info(ctx, "opportunity",
				"id", p.ID,
				"product", p.ProductName,
				"route", fmt.Sprintf("%s->%s", p.SourceStore, p.TargetStore),
				"net", p.Valuation.NetProfit.StringFixed(2),
				"risk", string(p.Valuation.Risk),
				"urgency", string(p.Urgency),
			)
		}
	}

	poll()
	for {
		select {
		case <-ctx.Done():
			log.Info(ctx, "shutting down")
			return nil
		case <-ticker.C:
			poll()
		}
	}
}
