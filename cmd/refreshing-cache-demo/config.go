package main

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// envPrefix is the prefix of every environment variable read by Config.
const envPrefix = "DEMO"

// Config is configuration for the demo commands.
type Config struct {
	// CacheDuration is how long fetched values are served before they are
	// fetched again.
	CacheDuration time.Duration `envconfig:"CACHE_DURATION" default:"10s"`
	// EarlyRefreshWindow is the span at the end of CacheDuration in which a
	// snapshot may be refreshed before it expires.
	EarlyRefreshWindow time.Duration `envconfig:"EARLY_REFRESH_WINDOW" default:"0s"`
	// EarlyRefreshProbability is the chance that a read inside
	// EarlyRefreshWindow refreshes the snapshot.
	EarlyRefreshProbability float64 `envconfig:"EARLY_REFRESH_PROBABILITY" default:"0.1"`
	// RefreshInterval is the interval of background refreshes. Zero disables
	// them.
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"0s"`
	// FetchDelay is the simulated latency of the backing query.
	FetchDelay time.Duration `envconfig:"FETCH_DELAY" default:"100ms"`
	// SaveDelay is the simulated latency of a single save.
	SaveDelay time.Duration `envconfig:"SAVE_DELAY" default:"100ms"`
	// Concurrency is the number of concurrent readers per round.
	Concurrency int `envconfig:"CONCURRENCY" default:"100"`
	// MaxAttempts is the number of attempts made for each saved item.
	MaxAttempts int `envconfig:"MAX_ATTEMPTS" default:"3"`
	// LogLevel is the minimum level of the log output.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// ConfigFromEnv returns a Config populated from environment variables.
func ConfigFromEnv() (Config, error) {
	cfg := Config{}
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, errors.Wrap(err, "error processing environment variables")
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.CacheDuration < 0 {
		return errors.Errorf("cache duration must not be negative: %s", c.CacheDuration)
	}
	if c.EarlyRefreshWindow < 0 || c.EarlyRefreshWindow > c.CacheDuration {
		return errors.Errorf("early refresh window must be between 0 and the cache duration: %s", c.EarlyRefreshWindow)
	}
	if c.EarlyRefreshProbability < 0 || c.EarlyRefreshProbability > 1 {
		return errors.Errorf("early refresh probability must be between 0 and 1: %g", c.EarlyRefreshProbability)
	}
	if c.RefreshInterval < 0 {
		return errors.Errorf("refresh interval must not be negative: %s", c.RefreshInterval)
	}
	if c.Concurrency < 1 {
		return errors.Errorf("concurrency must be at least 1: %d", c.Concurrency)
	}
	if c.MaxAttempts < 1 {
		return errors.Errorf("max attempts must be at least 1: %d", c.MaxAttempts)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	return nil
}
