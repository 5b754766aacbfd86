package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the reservation service.
type Config struct {
	AppEnv      string
	DatabaseURL string
}

// Load reads configuration from the environment, with an optional .env file
// for local development.
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	var errs []error

	databaseURL := mustEnv("DATABASE_URL", &errs)

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:      appEnv,
		DatabaseURL: databaseURL,
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}
