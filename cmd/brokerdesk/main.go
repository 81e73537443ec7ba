package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/rohanvaze/brokerdesk/internal/api"
	"github.com/rohanvaze/brokerdesk/internal/cli"
	"github.com/rohanvaze/brokerdesk/internal/config"
	"github.com/rohanvaze/brokerdesk/internal/db"
	"github.com/rohanvaze/brokerdesk/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger := config.NewLogger(os.Stderr, cfg.LogLevel)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sess := session.New(session.NewStore(database))
	if _, err := sess.Restore(); err != nil {
		logger.Warn("restoring session", "error", err)
	}

	client := api.NewClient(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: time.Duration(cfg.APITimeoutMs) * time.Millisecond,
	}, sess, api.NewSlogObserver(logger))

	app := &cli.App{
		Client:  client,
		Session: sess,
		Config:  cfg,
		Logger:  logger,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}
