package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Core system API (upstream data sources)
	CoreAPIURL        string        `env:"CORE_API_URL"         envDefault:"http://localhost:3000/api"`
	CoreAPITimeout    time.Duration `env:"CORE_API_TIMEOUT"     envDefault:"15s"`
	CoreAPIMaxRetries int           `env:"CORE_API_MAX_RETRIES" envDefault:"3"`

	// Database (optional - leave empty to disable run persistence)
	DatabaseURL      string        `env:"DATABASE_URL"       envDefault:""`
	DatabaseMaxConns int           `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	DatabaseMinConns int           `env:"DATABASE_MIN_CONNS" envDefault:"2"`
	MigrationsPath   string        `env:"MIGRATIONS_PATH"    envDefault:"migrations"`
	DatabaseTimeout  time.Duration `env:"DATABASE_TIMEOUT"   envDefault:"30s"`

	// Redis (optional - leave empty to disable the rate cache)
	RedisURL     string        `env:"REDIS_URL"      envDefault:""`
	RateCacheTTL time.Duration `env:"RATE_CACHE_TTL" envDefault:"10m"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Reconciliation
	// RateStrict surfaces a rate-source failure as an error instead of
	// degrading to a zero rate (legacy behavior).
	RateStrict bool          `env:"RATE_STRICT" envDefault:"false"`
	BatchSize  int           `env:"BATCH_SIZE"  envDefault:"5"`
	BatchPause time.Duration `env:"BATCH_PAUSE" envDefault:"500ms"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
