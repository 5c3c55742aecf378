package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cinebot/internal/config"
	"cinebot/internal/daemon"
	"cinebot/internal/logging"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath(), "configuration file path")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			if writeErr := config.WriteSample(*configPath); writeErr != nil {
				log.Fatalf("write sample config: %v", writeErr)
			}
			fmt.Fprintf(os.Stderr, "wrote sample config to %s; set the kinopoisk api_key and restart\n", *configPath)
			os.Exit(1)
		}
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	d, err := daemon.New(cfg, logger)
	if err != nil {
		log.Fatalf("create daemon: %v", err)
	}
	defer d.Close()

	if err := d.Run(ctx); err != nil {
		log.Fatalf("run daemon: %v", err)
	}
	logger.Info("cinebotd shutting down")
}
