package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/app"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/config"
	"github.com/ChuckBuilds/ledmatrix-basketball-scoreboard/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	var paths []string
	if *configPath != "" {
		paths = append(paths, *configPath)
	}

	cfg, err := config.Load(paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(logger, "startup failed", err)
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		logging.Error(logger, "scoreboard exited with error", err)
		os.Exit(1)
	}
}
