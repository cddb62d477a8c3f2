package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"snakeify/config"
	"snakeify/server"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "Path to the config file")
	port := flag.String("port", "", "Server port (overrides config)")
	release := flag.Bool("release", false, "Run gin in release mode")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}))
	slog.SetDefault(logger)

	store, err := server.NewMemoryStore(cfg.Server.DataFile, logger)
	if err != nil {
		slog.Error("Failed to open store", "path", cfg.Server.DataFile, "error", err)
		os.Exit(1)
	}

	mode := gin.DebugMode
	if *release {
		mode = gin.ReleaseMode
	}
	srv := server.New(store, logger, mode)

	slog.Info("Starting Snakeify score server", "port", cfg.Server.Port, "data", cfg.Server.DataFile)
	if err := srv.Start(cfg.Server.Port); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
