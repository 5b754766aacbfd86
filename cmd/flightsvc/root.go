package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cx-tal-miterani/flight-reservation/internal/config"
	"github.com/cx-tal-miterani/flight-reservation/internal/database"
)

var rootCmd = &cobra.Command{
	Use:           "flightsvc",
	Short:         "Flight reservation service",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(stressCmd)
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level := zerolog.DebugLevel
	if cfg.AppEnv == "production" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

func connect(ctx context.Context) (*config.Config, *pgxpool.Pool, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, zerolog.Nop(), err
	}
	log := newLogger(cfg)
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, log, err
	}
	return cfg, pool, log, nil
}
