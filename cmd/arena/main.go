package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/alejandrodnm/botarena/config"
	"github.com/alejandrodnm/botarena/internal/adapters/kalshi"
	"github.com/alejandrodnm/botarena/internal/adapters/notify"
	"github.com/alejandrodnm/botarena/internal/adapters/polymarket"
	"github.com/alejandrodnm/botarena/internal/adapters/refbook"
	"github.com/alejandrodnm/botarena/internal/adapters/storage"
	"github.com/alejandrodnm/botarena/internal/application/arena"
	"github.com/alejandrodnm/botarena/internal/application/universe"
	"github.com/alejandrodnm/botarena/internal/domain/strategy"
	"github.com/alejandrodnm/botarena/internal/report"
	"github.com/alejandrodnm/botarena/internal/transport/httpapi"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	once := flag.Bool("once", false, "run one arena cycle and exit")
	serve := flag.Bool("serve", false, "serve the HTTP API alongside the scheduler")
	reportPath := flag.String("report", "", "write the equity report HTML to this path and exit")
	reset := flag.Bool("reset", false, "reset all agents to the initial bankroll and exit")
	verbose := flag.Bool("verbose", false, "set log level to debug and print open positions")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("botarena starting",
		"config", *configPath,
		"interval", cfg.CycleInterval(),
		"agents", len(cfg.Agents),
		"dsn", cfg.Storage.DSN,
		"once", *once,
		"serve", *serve,
	)

	blobs, err := storage.Open(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	store := storage.NewGateway(blobs)
	defer store.Close()

	refs := refbook.Default()
	if cfg.Arena.ReferenceBook != "" {
		refs, err = refbook.FromYAML(cfg.Arena.ReferenceBook)
		if err != nil {
			slog.Error("failed to load reference book", "err", err, "path", cfg.Arena.ReferenceBook)
			os.Exit(1)
		}
	}

	markets := universe.New(store, cfg.CacheTTL(),
		polymarket.NewSource(polymarket.NewClient(cfg.API.GammaBase)),
		kalshi.NewSource(kalshi.NewClient(cfg.API.KalshiBase)),
	)
	runner := arena.NewRunner(markets, store, arena.NewEngine(strategy.NewRegistry(refs)), cfg.Agents)
	console := notify.NewConsole(*verbose)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch {
	case *reset:
		if err := runner.Reset(ctx); err != nil {
			slog.Error("reset failed", "err", err)
			os.Exit(1)
		}
		fmt.Println("All bots reset to $10,000")
		return

	case *reportPath != "":
		writeReport(ctx, runner, *reportPath)
		return

	case *once:
		console.PrintResult(runner.RunOnce(ctx, false))
		return

	case *serve:
		srv := httpapi.NewServer(cfg.HTTP.Addr, runner, store)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return srv.Start(gctx) })
		g.Go(func() error { return runner.Run(gctx, cfg.CycleInterval(), console.PrintResult) })
		if err := g.Wait(); err != nil {
			slog.Error("botarena exited with error", "err", err)
			os.Exit(1)
		}

	default:
		if err := runner.Run(ctx, cfg.CycleInterval(), console.PrintResult); err != nil {
			slog.Error("botarena exited with error", "err", err)
			os.Exit(1)
		}
	}

	slog.Info("botarena stopped cleanly")
}

func writeReport(ctx context.Context, runner *arena.Runner, path string) {
	res := runner.RunOnce(ctx, false)

	f, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create report file", "err", err, "path", path)
		os.Exit(1)
	}
	defer f.Close()

	if err := report.WriteEquityReport(f, res); err != nil {
		slog.Error("failed to render report", "err", err)
		os.Exit(1)
	}
	slog.Info("equity report written", "path", path, "agents", len(res.Agents))
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
