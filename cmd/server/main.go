package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/argo-insights/internal/logger"
	"github.com/rxtech-lab/argo-insights/internal/quote"
	"github.com/rxtech-lab/argo-insights/internal/server"
	"github.com/rxtech-lab/argo-insights/internal/store"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// serveAction loads the configuration, wires the quote fetcher and document
// store into the HTTP server, and blocks until a shutdown signal arrives.
func serveAction(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config, err := server.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Flags take precedence over the config file and environment.
	if cmd.IsSet("port") {
		config.Port = int(cmd.Int("port"))
	}

	if cmd.IsSet("data") {
		config.DatabasePath = cmd.String("data")
	}

	log, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	documents, err := store.NewDuckDBStore(config.DatabasePath, log)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}

	fetcher := quote.NewCSVFetcher(config.QuoteBaseURL, config.FetchTimeout(), log)

	srv := server.NewServer(config, log, fetcher, documents)
	if err := srv.Start(fmt.Sprintf(":%d", config.Port)); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Shutting down", zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info("Shutting down", zap.String("reason", "context cancelled"))
	}

	if err := srv.Stop(); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	return nil
}

// configSchemaAction prints the JSON schema for the server configuration so
// editors can validate config files against it.
func configSchemaAction(ctx context.Context, cmd *cli.Command) error {
	schemaJSON, err := server.DefaultConfig().GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	fmt.Println(schemaJSON)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "insights",
		Usage: "Stock insights API server",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP API server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the YAML configuration file",
						Required: false,
					},
					&cli.IntFlag{
						Name:     "port",
						Aliases:  []string{"p"},
						Usage:    "Port to listen on",
						Required: false,
					},
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Path to the DuckDB database file",
						Required: false,
					},
				},
				Action: serveAction,
			},
			{
				Name:   "config-schema",
				Usage:  "Print the configuration JSON schema",
				Action: configSchemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
