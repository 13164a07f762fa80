package main

import (
	"fmt"
	"os"

	"speclab-backend/cli"
	"speclab-backend/config"
	"speclab-backend/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	app := &cli.App{Config: cfg, Log: log}
	return cli.NewRootCmd(app).Execute()
}
