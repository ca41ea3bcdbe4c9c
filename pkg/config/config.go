// Package config loads the process-level configuration: Library Server
// connection details, the preset store path, and the resilience/timeout
// knobs around the Library Client.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the ambient configuration loaded once at process start.
type Config struct {
	LibraryURL      string `envconfig:"LIBRARY_URL"`
	LibraryToken    string `envconfig:"LIBRARY_TOKEN"`
	MusicLibrary    string `envconfig:"MUSIC_LIBRARY" default:"Music"`
	PresetStorePath string `envconfig:"PRESET_STORE_PATH" default:"Playlist_Presets"`
	RandomSeed      int64  `envconfig:"RANDOM_SEED" default:"0"`

	HTTPTimeout         time.Duration `envconfig:"HTTP_TIMEOUT" default:"60s"`
	RateLimitPerSecond  float64       `envconfig:"RATE_LIMIT_PER_SECOND" default:"20"`
	RateLimitBurst      int           `envconfig:"RATE_LIMIT_BURST" default:"10"`
	BreakerFailureCount uint32        `envconfig:"BREAKER_FAILURE_COUNT" default:"5"`
	BreakerOpenTimeout  time.Duration `envconfig:"BREAKER_OPEN_TIMEOUT" default:"30s"`
	DryRun              bool          `envconfig:"DRY_RUN" default:"false"`

	// MongoURL/MongoDatabase are only required when genre mapping
	// overrides are enabled for a run; left empty they simply mean the
	// genre Mapper has no override table to load.
	MongoURL      string `envconfig:"MONGO_URL"`
	MongoDatabase string `envconfig:"MONGO_DATABASE"`
}

// New loads configuration from the environment, optionally seeded by a
// local .env file (never required — a missing file is not an error).
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
