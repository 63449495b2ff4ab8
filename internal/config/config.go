package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"hitpulse/internal/config/configs"
)

// Storage backends selectable with STORAGE.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library. The
// nested structs are tagged with envPrefix so their fields are parsed with
// the given prefix. See the individual types in the configs package for
// default values and options. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev). It is only
	// attached to log lines.
	Env string `env:"ENV" envDefault:"prod"`

	// Storage selects the campaign store: memory, postgres or mongo.
	Storage string `env:"STORAGE" envDefault:"memory"`

	// HTTP holds configuration for the HTTP server. Environment variables
	// prefixed with HTTP_ will populate this struct.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger. Environment variables prefixed
	// with LOG_ will populate this struct.
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql configures the PostgreSQL connection. Environment variables
	// prefixed with PSQL_ will populate this struct.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// Mongo configures the MongoDB connection. Environment variables
	// prefixed with MONGO_ will populate this struct.
	Mongo configs.Mongo `envPrefix:"MONGO_"`

	// Traffic configures scheduling and outbound visits. Environment
	// variables prefixed with TRAFFIC_ will populate this struct.
	Traffic configs.Traffic `envPrefix:"TRAFFIC_"`
}

// Load reads configuration from environment variables into a Config. The
// given dotenv files are loaded first when they exist; variables already
// set in the environment win. All fields are loaded with their specified
// defaults when no environment variable is provided.
func Load(dotenv ...string) (Config, error) {
	var cfg Config
	for _, path := range dotenv {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	switch cfg.Storage {
	case StorageMemory, StoragePostgres, StorageMongo:
	default:
		return cfg, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
	return cfg, nil
}
