package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/exp/rand"

	"snakeify/api"
	"snakeify/audio"
	"snakeify/audio/device"
	"snakeify/catalog"
	"snakeify/config"
	"snakeify/game"
	"snakeify/game/manager"
	"snakeify/media"
	"snakeify/tui"
	"snakeify/ui"
)

const (
	fetchTimeout  = 15 * time.Second
	apiTimeout    = 10 * time.Second
	speakerBuffer = 100 * time.Millisecond
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "Path to the config file")
	frontend := flag.String("ui", "", "Frontend: window or terminal (overrides config)")
	userID := flag.Int("user", 0, "User id scores are submitted for (overrides config)")
	register := flag.String("register", "", "Register a player with this display name and print its id")
	prefetch := flag.Bool("prefetch", false, "Download all catalog artwork and previews before playing")
	leaderboard := flag.Int("leaderboard", 0, "Print the top N players and exit")
	history := flag.Int("history", 0, "Print the songs eaten in a session and exit")
	stats := flag.Bool("stats", false, "Print local score statistics and exit")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *frontend != "" {
		cfg.UI = *frontend
	}
	if *userID > 0 {
		cfg.UserID = *userID
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.NewClient(cfg.APIBase, apiTimeout, slog.Default())
	switch {
	case *register != "":
		os.Exit(runRegister(ctx, client, *register))
	case *leaderboard > 0:
		os.Exit(runLeaderboard(ctx, client, *leaderboard))
	case *history > 0:
		os.Exit(runHistory(ctx, client, *history))
	case *stats:
		os.Exit(runStats(manager.NewStateManager(cfg.DataDir, slog.Default())))
	}

	logger, closeLog, err := setupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	if err := run(ctx, cfg, *prefetch, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Snakeify stopped", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogger writes to the log file since both frontends own the terminal
func setupLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)})
	return slog.New(handler), func() { f.Close() }, nil
}

func run(ctx context.Context, cfg *config.Config, prefetch bool, logger *slog.Logger) error {
	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("failed to load catalog %s: %w", cfg.Catalog, err)
	}
	logger.Info("Catalog loaded", "path", cfg.Catalog, "tracks", cat.Len())

	fetcher := media.NewHTTPFetcher(cfg.CacheDir, fetchTimeout, logger)
	if prefetch {
		urls := cat.URLs()
		bar := progressbar.NewOptions(
			len(urls),
			progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetTheme(progressbar.ThemeASCII),
			progressbar.OptionFullWidth(),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("[cyan]Caching artwork and previews...[reset]"),
		)
		if err := media.Prefetch(ctx, fetcher, urls, 4, bar, logger); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("Some media could not be cached", "error", err)
		}
		fmt.Println()
	}

	engine := audio.NewEngine(fetcher, audio.Options{
		Volume: cfg.Audio.Volume,
		Fade:   cfg.Fade(),
		Logger: logger,
	})
	defer engine.Close()
	if cfg.Audio.Enabled {
		dev, err := device.Open(engine, speakerBuffer)
		if err != nil {
			logger.Warn("Running without sound", "error", err)
		} else {
			engine.SetLive(true)
			defer dev.Close()
		}
	}

	stats := manager.NewStateManager(cfg.DataDir, logger)
	client := api.NewClient(cfg.APIBase, apiTimeout, logger)

	g := game.New(ctx, game.Deps{
		Catalog:   cat,
		Audio:     engine,
		Images:    media.NewImageLoader(ctx, fetcher, logger),
		Submitter: client,
		UserID:    cfg.UserID,
		Stats:     stats,
		Rand:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		Logger:    logger,
	}, game.Options{
		GridSize:     cfg.Game.GridSize,
		TickInterval: cfg.TickInterval(),
	})
	defer g.Close()

	if cfg.UserID <= 0 {
		logger.Info("No user configured, scores stay local")
	}

	switch cfg.UI {
	case config.UITerminal:
		return runTerminal(ctx, g, logger)
	default:
		return ui.Run(ctx, g, ui.Options{
			Title:    "Snakeify",
			GridSize: cfg.Game.GridSize,
			CellSize: cfg.Game.CellSize,
		}, logger)
	}
}

func runTerminal(ctx context.Context, g *game.Game, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	screen.HideCursor()
	return tui.Run(ctx, screen, g, logger)
}
