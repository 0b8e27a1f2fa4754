package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/example/halovoc/internal/cli"
	"github.com/example/halovoc/internal/config"
)

func main() {
	cfg := config.Load()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: "15:04:05",
	}))
	slog.SetDefault(logger)

	if err := cli.NewRootCommand(cfg).Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
